// manager_test.go - Tests for storage layer
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func createTestStore(t *testing.T) *LocalStore {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestNewLocalStore(t *testing.T) {
	t.Run("creates upload directory", func(t *testing.T) {
		uploadDir := filepath.Join(t.TempDir(), "uploads")

		if _, err := NewLocalStore(uploadDir); err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}

		if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
			t.Error("Expected upload directory to be created")
		}
	})
}

func TestLocalStore_Save(t *testing.T) {
	t.Run("saves document from reader", func(t *testing.T) {
		store := createTestStore(t)

		content := "%PDF-1.4 lecture notes"
		info, err := store.Save("notes.pdf", strings.NewReader(content))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		if info.ID == "" {
			t.Error("Expected ID to be set")
		}
		if info.Name != "notes.pdf" {
			t.Errorf("Expected name 'notes.pdf', got %v", info.Name)
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Expected size %d, got %d", len(content), info.Size)
		}
	})

	t.Run("creates physical file", func(t *testing.T) {
		store := createTestStore(t)

		content := "Test content"
		info, err := store.Save("test.pdf", strings.NewReader(content))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(store.uploadDir, info.ID))
		if err != nil {
			t.Fatalf("Failed to read saved file: %v", err)
		}
		if string(data) != content {
			t.Errorf("Expected content '%s', got '%s'", content, string(data))
		}
	})
}

func TestLocalStore_Get(t *testing.T) {
	t.Run("gets existing document", func(t *testing.T) {
		store := createTestStore(t)

		info, err := store.Save("test.pdf", strings.NewReader("content"))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		retrieved, err := store.Get(info.ID)
		if err != nil {
			t.Fatalf("Failed to get file: %v", err)
		}
		if retrieved.ID != info.ID {
			t.Errorf("Expected ID %s, got %s", info.ID, retrieved.ID)
		}
	})

	t.Run("returns error for non-existent document", func(t *testing.T) {
		store := createTestStore(t)

		if _, err := store.Get("non-existent-id"); err == nil {
			t.Error("Expected error for non-existent file")
		}
	})
}

func TestLocalStore_List(t *testing.T) {
	t.Run("limits results and sorts by upload time descending", func(t *testing.T) {
		store := createTestStore(t)

		ids := make([]string, 5)
		for i := 0; i < 5; i++ {
			info, err := store.Save("doc.pdf", strings.NewReader("content"))
			if err != nil {
				t.Fatalf("Failed to save file: %v", err)
			}
			ids[i] = info.ID
			time.Sleep(10 * time.Millisecond) // Ensure different timestamps
		}

		files, err := store.List(3)
		if err != nil {
			t.Fatalf("Failed to list files: %v", err)
		}
		if len(files) != 3 {
			t.Errorf("Expected 3 files, got %d", len(files))
		}
		if files[0].ID != ids[4] {
			t.Error("Expected files to be sorted by time descending")
		}
	})
}

func TestLocalStore_Delete(t *testing.T) {
	t.Run("deletes existing document", func(t *testing.T) {
		store := createTestStore(t)

		info, err := store.Save("test.pdf", strings.NewReader("content"))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		if err := store.Delete(info.ID); err != nil {
			t.Fatalf("Failed to delete file: %v", err)
		}

		if _, err := store.Get(info.ID); err == nil {
			t.Error("Expected error when getting deleted file")
		}
		if _, err := os.Stat(filepath.Join(store.uploadDir, info.ID)); !os.IsNotExist(err) {
			t.Error("Physical file should be deleted")
		}
	})

	t.Run("returns error for non-existent document", func(t *testing.T) {
		store := createTestStore(t)

		if err := store.Delete("non-existent-id"); err == nil {
			t.Error("Expected error when deleting non-existent file")
		}
	})
}

func TestLocalStore_Open(t *testing.T) {
	t.Run("reads back stored content", func(t *testing.T) {
		store := createTestStore(t)

		content := "notes content"
		info, err := store.Save("notes.pdf", strings.NewReader(content))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		r, err := store.Open(info.ID)
		if err != nil {
			t.Fatalf("Failed to open file: %v", err)
		}
		defer r.Close()

		data, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(data) != content {
			t.Errorf("Expected content '%s', got '%s'", content, string(data))
		}
	})

	t.Run("returns error for non-existent document", func(t *testing.T) {
		store := createTestStore(t)

		if _, err := store.Open("non-existent-id"); err == nil {
			t.Error("Expected error when opening non-existent file")
		}
	})
}

func TestLocalStore_GetFilePath(t *testing.T) {
	t.Run("returns path for existing document", func(t *testing.T) {
		store := createTestStore(t)

		info, err := store.Save("test.pdf", strings.NewReader("content"))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		path, err := store.GetFilePath(info.ID)
		if err != nil {
			t.Fatalf("Failed to get file path: %v", err)
		}
		if path != filepath.Join(store.uploadDir, info.ID) {
			t.Errorf("Unexpected path %s", path)
		}
	})

	t.Run("returns error for non-existent document", func(t *testing.T) {
		store := createTestStore(t)

		if _, err := store.GetFilePath("non-existent-id"); err == nil {
			t.Error("Expected error when getting path for non-existent file")
		}
	})
}

// mockReader is a reader that can simulate errors
type mockReader struct {
	data      []byte
	readCount int
	failAfter int
}

func (m *mockReader) Read(p []byte) (n int, err error) {
	if m.readCount >= m.failAfter {
		return 0, io.ErrUnexpectedEOF
	}
	m.readCount++
	n = copy(p, m.data)
	return n, nil
}

func TestLocalStore_ErrorHandling(t *testing.T) {
	t.Run("handles read error during save", func(t *testing.T) {
		store := createTestStore(t)

		reader := &mockReader{data: []byte("data"), failAfter: 0}

		if _, err := store.Save("test.pdf", reader); err == nil {
			t.Error("Expected error when reader fails")
		}
	})
}
