package instance

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstancePaths(t *testing.T) {
	inst := &Instance{Title: "Vanilla", Dir: filepath.Join("games", "vanilla")}

	assert.Equal(t, filepath.Join("games", "vanilla", "minecraft"), inst.ContentDir())
	assert.Equal(t, filepath.Join("games", "vanilla", "version.json"), inst.VersionPath())
	assert.Equal(t, filepath.Join("games", "vanilla", "minecraft", "bin", "minecraft.jar"), inst.CustomJarPath())

	inst.CustomJar = filepath.Join("opt", "custom.jar")
	assert.Equal(t, filepath.Join("opt", "custom.jar"), inst.CustomJarPath())
}

func TestStoreFunc(t *testing.T) {
	var committed *Instance
	store := StoreFunc(func(_ context.Context, inst *Instance) error {
		committed = inst
		return nil
	})

	inst := &Instance{Title: "x"}
	assert.NoError(t, store.Commit(context.Background(), inst))
	assert.Same(t, inst, committed)
}
