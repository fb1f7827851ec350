package config

import (
	"testing"
	"time"
)

func TestDefaultResilienceConfigDoesNotRetry(t *testing.T) {
	if DefaultResilienceConfig.SheetRead.MaxRetries != 0 {
		t.Errorf("Expected no sheet read retries, got %d", DefaultResilienceConfig.SheetRead.MaxRetries)
	}
	if DefaultResilienceConfig.Send.MaxRetries != 0 {
		t.Errorf("Expected no send retries, got %d", DefaultResilienceConfig.Send.MaxRetries)
	}
}

func TestWithSheetReadCopies(t *testing.T) {
	custom := DefaultResilienceConfig.WithSheetRead(3, 5*time.Second).WithSendTimeout(7 * time.Second)

	if custom.SheetRead.MaxRetries != 3 || custom.SheetRead.Timeout != 5*time.Second {
		t.Errorf("Unexpected sheet read config %+v", custom.SheetRead)
	}
	if custom.Send.Timeout != 7*time.Second {
		t.Errorf("Unexpected send timeout %v", custom.Send.Timeout)
	}
	if DefaultResilienceConfig.SheetRead.MaxRetries != 0 {
		t.Error("Default config was mutated")
	}
	if custom.SheetRead.BaseDelay != DefaultResilienceConfig.SheetRead.BaseDelay {
		t.Error("Expected base delay to be kept")
	}
}
