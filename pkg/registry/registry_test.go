package registry_test

import (
	"sync"
	"testing"

	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/aretw0/kestrel/pkg/registry"
	"github.com/stretchr/testify/assert"
)

func TestSaveOverwrites(t *testing.T) {
	reg := registry.New()

	reg.Save("svc", "first")
	reg.Save("svc", "second")

	assert.Equal(t, "second", reg.Get("svc"))
}

func TestGetAbsent(t *testing.T) {
	reg := registry.New()

	assert.Nil(t, reg.Get("nothing"))
}

func TestRemoveIsSoftDelete(t *testing.T) {
	reg := registry.New()
	reg.Save("svc", "value")

	reg.Remove("svc")

	assert.Nil(t, reg.Get("svc"))
	assert.Contains(t, reg.Keys(), "svc", "removal keeps the slot present")
}

func TestRemoveUnknownKeyIsNoop(t *testing.T) {
	reg := registry.New()

	reg.Remove("never-saved")

	assert.Empty(t, reg.Keys())
}

func TestAddIsIdempotent(t *testing.T) {
	reg := registry.New()
	wf := domain.Workflow{{Service: "svc"}}

	reg.Add("#flow", wf)
	first, ok1 := reg.Navigator("#flow")
	reg.Add("#flow", wf)
	second, ok2 := reg.Navigator("#flow")

	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Same(t, first[0], second[0], "same registration resolves to the same workflow")
}

func TestAddOverwrites(t *testing.T) {
	reg := registry.New()
	reg.Add("#flow", domain.Workflow{{Service: "old"}})
	reg.Add("#flow", domain.Workflow{{Service: "new"}})

	wf, ok := reg.Navigator("#flow")

	assert.True(t, ok)
	assert.Equal(t, "new", wf[0].Service)
}

func TestRemoveNavigator(t *testing.T) {
	reg := registry.New()
	reg.Add("#flow", domain.Workflow{{Service: "svc"}})

	reg.RemoveNavigator("#flow")

	_, ok := reg.Navigator("#flow")
	assert.False(t, ok)
	assert.NotContains(t, reg.Navigators(), "#flow")
}

func TestNavigatorsListsRoots(t *testing.T) {
	reg := registry.New()
	reg.Add("#a", domain.Workflow{{Service: "svc"}})
	reg.Add("#b", domain.Workflow{{Service: "svc"}})
	reg.Add("#c", domain.Workflow{{Service: "svc"}})
	reg.RemoveNavigator("#b")

	roots := reg.Navigators()

	assert.ElementsMatch(t, []string{"#a", "#c"}, roots)
}

func TestConcurrentAccess(t *testing.T) {
	reg := registry.New()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			reg.Save("shared", "v")
			reg.Add("#flow", domain.Workflow{{Service: "svc"}})
		}()
		go func() {
			defer wg.Done()
			_ = reg.Get("shared")
			_, _ = reg.Navigator("#flow")
			_ = reg.Keys()
		}()
	}
	wg.Wait()
}
