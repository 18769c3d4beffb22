package memory_test

import (
	"testing"

	"github.com/askdeskhq/askdesk/pkg/adapters/memory"
	"github.com/askdeskhq/askdesk/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunRecordStoreContract(t, memory.NewStore())
}
