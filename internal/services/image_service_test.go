package services_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/triply/triply-be/internal/services"
)

func TestImageService_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	svc := services.NewImageService(dir)

	filename, err := svc.Save("vacation.JPG", strings.NewReader("fake-image-bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(filename, ".jpg"), "extension is normalized to lower case")

	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	require.Equal(t, "fake-image-bytes", string(data))

	require.NoError(t, svc.Delete(filename))
	_, err = os.Stat(filepath.Join(dir, filename))
	require.True(t, os.IsNotExist(err))
}

func TestImageService_RejectsUnsupportedType(t *testing.T) {
	svc := services.NewImageService(t.TempDir())

	_, err := svc.Save("script.sh", strings.NewReader("#!/bin/sh"))
	require.Error(t, err)
}

func TestImageService_DeleteMissingFileFails(t *testing.T) {
	svc := services.NewImageService(t.TempDir())
	require.Error(t, svc.Delete("never-uploaded.png"))
}

func TestImageService_DeleteFlattensPath(t *testing.T) {
	dir := t.TempDir()
	svc := services.NewImageService(dir)

	outside := filepath.Join(filepath.Dir(dir), "outside.png")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0644))
	t.Cleanup(func() { os.Remove(outside) })

	// A traversal attempt resolves inside the uploads dir and fails there.
	require.Error(t, svc.Delete("../outside.png"))
	_, err := os.Stat(outside)
	require.NoError(t, err, "file outside the uploads dir must survive")
}
