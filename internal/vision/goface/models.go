package goface

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
)

// The dlib model files go-face needs to run detection and encoding.
const modelsBaseURL = "https://github.com/Kagami/go-face-testdata/raw/master/models/"

var requiredModels = []string{
	"shape_predictor_5_face_landmarks.dat",
	"dlib_face_recognition_resnet_model_v1.dat",
	"mmod_human_face_detector.dat",
}

// DefaultModelsDir returns the per-user models directory,
// ~/.facekeeper/models, falling back to a relative path when the home
// directory cannot be resolved.
func DefaultModelsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".facekeeper", "models")
	}
	return filepath.Join(home, ".facekeeper", "models")
}

// ModelsExist reports whether every required model file is present in dir.
func ModelsExist(dir string) bool {
	for _, name := range requiredModels {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

// EnsureModels downloads any missing model files into dir, showing a
// progress bar per file. Files already present are left untouched.
func EnsureModels(dir string) error {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	for _, name := range requiredModels {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := downloadModel(modelsBaseURL+name, path, name); err != nil {
			return err
		}
	}
	return nil
}

func downloadModel(url, path, name string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("download %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", name, resp.Status)
	}

	// Download to a temp name first so a partial file never passes the
	// ModelsExist check.
	tmp, err := os.Create(path + ".part")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	bar := progressbar.DefaultBytes(resp.ContentLength, name)
	if _, err := io.Copy(io.MultiWriter(tmp, bar), resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", path, err)
	}

	return os.Rename(tmp.Name(), path)
}
