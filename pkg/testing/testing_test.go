package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleRoot_FromNestedDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, moduleRoot(filepath.Join(wd, "pkg", "guardian", "mocks")))
}

func TestInitMovesToModuleRoot(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(wd, "go.mod"))
	assert.DirExists(t, filepath.Join(wd, "pkg", "testing"))
}

