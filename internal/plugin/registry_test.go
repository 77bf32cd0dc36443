package plugin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routee-compass/compass-core/internal/plugin"
)

type fakeService struct{ Name string }

func TestRegistryBuildsByTag(t *testing.T) {
	r := plugin.NewRegistry[*fakeService]()
	r.Register("simple", func(config map[string]any) (*fakeService, error) {
		return &fakeService{Name: "simple"}, nil
	})

	svc, err := r.Build("simple", nil)
	require.NoError(t, err)
	assert.Equal(t, "simple", svc.Name)
}

func TestRegistryUnknownTag(t *testing.T) {
	r := plugin.NewRegistry[*fakeService]()
	_, err := r.Build("nope", nil)
	assert.ErrorIs(t, err, plugin.ErrUnknownTag)
}

func TestRegistryTagsSorted(t *testing.T) {
	r := plugin.NewRegistry[*fakeService]()
	r.Register("zeta", func(config map[string]any) (*fakeService, error) { return &fakeService{}, nil })
	r.Register("alpha", func(config map[string]any) (*fakeService, error) { return &fakeService{}, nil })
	assert.Equal(t, []string{"alpha", "zeta"}, r.Tags())
}
