package irep

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/dcurrie/picrin/value"
)

func Test_PersistLoadRoundTrip(t *testing.T) {
	blob, err := Encode(value.Int(258))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "value.irep")
	if err := Persist(path, blob); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, blob) {
		t.Fatalf("Load = % x, want % x", got, blob)
	}
}

func Test_PersistLoadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.irep")
	if err := Persist(path, nil); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("Load = %v, want empty", got)
	}
}
