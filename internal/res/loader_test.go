package res

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDataURL(t *testing.T) {
	l := NewLoader("")

	payload := []byte("fake-image-bytes")
	u := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	res, err := l.Load(u)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(res.Data) != string(payload) {
		t.Errorf("unexpected data: %q", res.Data)
	}
	if res.MimeType != "image/png" {
		t.Errorf("mime = %q, want image/png", res.MimeType)
	}
}

func TestLoadDataURLPlain(t *testing.T) {
	l := NewLoader("")

	res, err := l.Load("data:text/plain,hello")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(res.Data) != "hello" {
		t.Errorf("unexpected data: %q", res.Data)
	}
}

func TestLoadDataURLInvalid(t *testing.T) {
	l := NewLoader("")
	if _, err := l.Load("data:image/png;base64"); err == nil {
		t.Error("expected error for data URL without payload")
	}
	if _, err := l.Load("data:image/png;base64,!!!not-base64!!!"); err == nil {
		t.Error("expected error for invalid base64 payload")
	}
}

func TestLoadLocalWithBaseDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "figure.png"), []byte("png-bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir)
	res, err := l.Load("figure.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(res.Data) != "png-bytes" {
		t.Errorf("unexpected data: %q", res.Data)
	}
	if res.MimeType != "image/png" {
		t.Errorf("mime = %q, want image/png", res.MimeType)
	}
}

func TestLoaderBaseFromFilePath(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "exam.json")
	if err := os.WriteFile(docPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "img.gif"), []byte("gif"), 0644); err != nil {
		t.Fatal(err)
	}

	// a file base resolves siblings of that file
	l := NewLoader(docPath)
	if _, err := l.Load("img.gif"); err != nil {
		t.Errorf("Load via file base: %v", err)
	}
}

func TestLoadLocalSearchPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "shared.svg"), []byte("<svg/>"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(t.TempDir())
	l.AddSearchPath(dir)

	res, err := l.Load("assets/shared.svg")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !res.IsSVG() {
		t.Error("svg resource not detected as SVG")
	}
}

func TestLoadLocalMissing(t *testing.T) {
	l := NewLoader(t.TempDir())
	if _, err := l.Load("nope.png"); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := l.Load(""); err == nil {
		t.Error("expected error for empty reference")
	}
}

func TestLoadRemote(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	l := NewLoader("")
	res, err := l.Load(srv.URL + "/photo.jpg")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.MimeType != "image/jpeg" {
		t.Errorf("mime = %q, want image/jpeg", res.MimeType)
	}

	// second load must come from the cache
	if _, err := l.Load(srv.URL + "/photo.jpg"); err != nil {
		t.Fatalf("cached Load: %v", err)
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}
}

func TestLoadRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	l := NewLoader("")
	if _, err := l.Load(srv.URL + "/gone.png"); err == nil {
		t.Error("expected error for 404 response")
	}
}
