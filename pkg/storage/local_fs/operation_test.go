package local_fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalFS_SendFile(t *testing.T) {
	// Setup temporary directory
	tempDir := t.TempDir()

	// Create LocalFS client
	client, err := NewClient(&Config{
		SavePath: tempDir,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	// Prepare data
	filename := "sub/dir/test_file.txt"
	content := "hello world"
	reader := strings.NewReader(content)

	// Call SendFile
	savedKey, err := client.SendFile(filename, reader, "text/plain")
	if err != nil {
		t.Fatalf("SendFile failed: %v", err)
	}
	if savedKey != filename {
		t.Errorf("Expected key %s, got %s", filename, savedKey)
	}

	// Verify file existence
	savedPath := filepath.Join(tempDir, filename)
	if _, err := os.Stat(savedPath); os.IsNotExist(err) {
		t.Fatalf("File not found at %s", savedPath)
	}

	// Verify content
	savedContent, err := os.ReadFile(savedPath)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if string(savedContent) != content {
		t.Errorf("Content mismatch: expected %s, got %s", content, string(savedContent))
	}
}

func TestLocalFS_SendContentAndDelete(t *testing.T) {
	tempDir := t.TempDir()

	client, err := NewClient(&Config{SavePath: tempDir})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	savedKey, err := client.SendContent("note/1/a.bin", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("SendContent failed: %v", err)
	}
	savedPath := filepath.Join(tempDir, savedKey)
	if _, err := os.Stat(savedPath); err != nil {
		t.Fatalf("File not found at %s", savedPath)
	}

	if err := client.Delete("note/1/a.bin"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(savedPath); !os.IsNotExist(err) {
		t.Errorf("File should be removed at %s", savedPath)
	}

	// Deleting a missing file is not an error
	if err := client.Delete("note/1/a.bin"); err != nil {
		t.Errorf("Delete of missing file should succeed, got %v", err)
	}
}
