package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeName_ControlChars(t *testing.T) {
	got := SanitizeName(" A\nB\rC\tD\x00 ", 100)
	if strings.ContainsAny(got, "\n\r\t\x00") {
		t.Fatalf("sanitize output contains control chars: %q", got)
	}
	if got != "ABCD" {
		t.Fatalf("SanitizeName control char behavior mismatch, got %q", got)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"Az09 -_.,()", 100, "Az09 -_.,()"},
		{"bad<>|\"name", 100, "bad____name"},
		{"abcdefghijklmnopqrstuvwxyz", 10, "abcdefghij"},
		{"Take/01", 0, "Take_01"},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("SanitizeName(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestSanitizeReelName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CamA", "CAMA"},
		{"Cam_Wide_Left", "CAM_WIDE"},
		{"cam-01 b", "CAM01B"},
		{"Kaméra", "KAMRA"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeReelName(tt.in); got != tt.want {
			t.Errorf("SanitizeReelName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("Main Take"); got != "Main_Take.edl" {
		t.Errorf("FileName() = %q, want Main_Take.edl", got)
	}
	if got := FileName("<>"); got != "__.edl" {
		t.Errorf("FileName(<>) = %q, want __.edl", got)
	}
	if got := FileName(""); got != "take.edl" {
		t.Errorf("FileName(\"\") = %q, want take.edl", got)
	}
}

func TestValidateOutputDir(t *testing.T) {
	tmp := t.TempDir()
	filePath := filepath.Join(tmp, "file.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	tests := []struct {
		name    string
		dir     string
		wantErr bool
	}{
		{"valid", tmp, false},
		{"empty", " ", true},
		{"missing", filepath.Join(tmp, "missing"), true},
		{"traversal", "/tmp/../etc", true},
		{"unclean", tmp + "/./", true},
		{"not a dir", filePath, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputDir(tt.dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateOutputDir(%q) error = %v, wantErr %v", tt.dir, err, tt.wantErr)
			}
		})
	}
}

func TestWriteEDL(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteEDL(dir, "Main Take", "TITLE: x\n")
	if err != nil {
		t.Fatalf("WriteEDL() error = %v", err)
	}
	if path != filepath.Join(dir, "Main_Take.edl") {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "TITLE: x\n" {
		t.Errorf("file content = %q, %v", data, err)
	}

	if _, err := WriteEDL(filepath.Join(dir, "nope"), "x", ""); err == nil {
		t.Error("WriteEDL() into missing dir should fail")
	}
}
