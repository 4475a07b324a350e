package profilestore

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/diillson/printer-tco-cli/internal/domain/entity"
	"github.com/diillson/printer-tco-cli/internal/shared/types"
)

func sampleProfile() entity.Profile {
	return entity.Profile{
		Name:     "office",
		Coverage: entity.CoverageAssumptions{CoverageBW: 5, CoverageColor: 8, ColorShare: 30},
		Printers: []entity.Printer{
			{ID: 2, Model: "EcoTank ET-2810", PurchasePrice: 259, IsColor: true,
				Cartridges: map[entity.Channel]entity.Cartridge{
					entity.Black: {Price: 9.99, YieldPages: 4500, Edited: true},
					entity.Cyan:  {Price: 8.99, YieldPages: 7500},
				}},
			{ID: 1, Model: `O"Brien, Inc. Special`, PurchasePrice: 220},
		},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	repo := NewProfileRepository(t.TempDir())
	profile := sampleProfile()

	if err := repo.Save(profile); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load("office")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, profile) {
		t.Fatalf("round-trip mismatch:\n got %+v\nwant %+v", got, profile)
	}
	// A ordem de inserção dos registros precisa sobreviver ao round-trip.
	if got.Printers[0].ID != 2 || got.Printers[1].ID != 1 {
		t.Fatalf("printer order changed: %+v", got.Printers)
	}
}

func TestSave_OverwritesWholesale(t *testing.T) {
	repo := NewProfileRepository(t.TempDir())

	first := sampleProfile()
	if err := repo.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := entity.Profile{Name: "office", Coverage: entity.DefaultCoverage()}
	if err := repo.Save(second); err != nil {
		t.Fatalf("Save (overwrite): %v", err)
	}

	got, err := repo.Load("office")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Printers) != 0 {
		t.Fatalf("old printers survived the overwrite: %+v", got.Printers)
	}
}

func TestLoad_NotFound(t *testing.T) {
	repo := NewProfileRepository(t.TempDir())

	_, err := repo.Load("missing")
	if !errors.Is(err, types.ErrProfileNotFound) {
		t.Fatalf("got err %v, want ErrProfileNotFound", err)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	repo := NewProfileRepository(dir)

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	_, err := repo.Load("broken")
	if !errors.Is(err, types.ErrCorruptProfile) {
		t.Fatalf("got err %v, want ErrCorruptProfile", err)
	}
}

func TestSave_RejectsPathSeparators(t *testing.T) {
	repo := NewProfileRepository(t.TempDir())

	if err := repo.Save(entity.Profile{Name: "../escape"}); err == nil {
		t.Fatal("expected error for profile name with path separator")
	}
}

func TestList_SortedNames(t *testing.T) {
	repo := NewProfileRepository(t.TempDir())

	for _, name := range []string{"zuhause", "office", "agentur"} {
		if err := repo.Save(entity.Profile{Name: name, Coverage: entity.DefaultCoverage()}); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
	}

	names, err := repo.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if want := []string{"agentur", "office", "zuhause"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("List = %v, want %v", names, want)
	}
}

func TestList_EmptyDirectory(t *testing.T) {
	repo := NewProfileRepository(filepath.Join(t.TempDir(), "does-not-exist-yet"))

	names, err := repo.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if names != nil {
		t.Fatalf("List = %v, want nil", names)
	}
}
