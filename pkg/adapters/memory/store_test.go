package memory_test

import (
	"testing"

	"github.com/aretw0/kestrel/pkg/adapters/memory"
	"github.com/aretw0/kestrel/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunMemoryStoreContract(t, memory.NewStore())
}
