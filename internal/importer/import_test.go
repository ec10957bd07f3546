package importer

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jwulff/glossplayer/internal/gloss"
	"github.com/jwulff/glossplayer/internal/library"
)

type recordingAdder struct {
	songs []library.Song
	err   error
}

func (r *recordingAdder) Add(_ context.Context, song library.Song) error {
	if r.err != nil {
		return r.err
	}
	r.songs = append(r.songs, song)
	return nil
}

func TestImport(t *testing.T) {
	path := writeFile(t, "Grace-GLOSS.txt", []byte("AMAZING | GRACE(2h)\nHOW~SWEET"))
	adder := &recordingAdder{}

	song, err := Import(context.Background(), adder, Request{
		Path:           path,
		Title:          "  Amazing Grace ",
		SheetMusicFile: "/tmp/grace.pdf",
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if song.ID == "" {
		t.Error("ID is empty")
	}
	if song.Title != "Amazing Grace" {
		t.Errorf("Title = %q", song.Title)
	}
	if !filepath.IsAbs(song.GlossFile) {
		t.Errorf("GlossFile = %q, want absolute path", song.GlossFile)
	}
	want := gloss.Document{{"AMAZING", "GRACE(2h)"}, {"HOW~SWEET"}}
	if !reflect.DeepEqual(song.GlossData, want) {
		t.Errorf("GlossData = %v, want %v", song.GlossData, want)
	}
	if song.DateAdded.IsZero() {
		t.Error("DateAdded not set")
	}
	if len(adder.songs) != 1 || adder.songs[0].ID != song.ID {
		t.Errorf("stored songs = %+v", adder.songs)
	}
}

func TestImportUniqueIDs(t *testing.T) {
	path := writeFile(t, "a-GLOSS.txt", []byte("A"))
	adder := &recordingAdder{}
	first, _ := Import(context.Background(), adder, Request{Path: path, Title: "A"})
	second, _ := Import(context.Background(), adder, Request{Path: path, Title: "A"})
	if first.ID == second.ID {
		t.Errorf("IDs collide: %s", first.ID)
	}
}

func TestImportTitleRequired(t *testing.T) {
	path := writeFile(t, "a-GLOSS.txt", []byte("A"))
	adder := &recordingAdder{}
	if _, err := Import(context.Background(), adder, Request{Path: path, Title: "   "}); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("err = %v, want ErrTitleRequired", err)
	}
	if len(adder.songs) != 0 {
		t.Error("song stored despite missing title")
	}
}

func TestImportReadFailureStoresNothing(t *testing.T) {
	adder := &recordingAdder{}
	_, err := Import(context.Background(), adder, Request{Path: filepath.Join(t.TempDir(), "missing.txt"), Title: "X"})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(adder.songs) != 0 {
		t.Error("song stored despite read failure")
	}
}

func TestImportStoreFailure(t *testing.T) {
	path := writeFile(t, "a-GLOSS.txt", []byte("A"))
	adder := &recordingAdder{err: library.ErrDuplicate}
	if _, err := Import(context.Background(), adder, Request{Path: path, Title: "A"}); !errors.Is(err, library.ErrDuplicate) {
		t.Errorf("err = %v, want ErrDuplicate", err)
	}
}
