package batch

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ironsheep/stripe-locator/internal/config"
)

// writeStripePNG saves a 512x384 green image with a white/red striped
// target at (200,50)-(261,151) whose centre is (230,100).
func writeStripePNG(t *testing.T, path string, stripes bool) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 512, 384))
	for y := 0; y < 384; y++ {
		for x := 0; x < 512; x++ {
			var c color.RGBA
			switch {
			case !stripes:
				c = color.RGBA{255, 255, 255, 255}
			case x >= 200 && x < 261 && y >= 50 && y < 151 && ((y-50)/4)%2 == 1:
				c = color.RGBA{255, 0, 0, 255}
			case x >= 200 && x < 261 && y >= 50 && y < 151:
				c = color.RGBA{255, 255, 255, 255}
			default:
				c = color.RGBA{0, 160, 0, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
}

func testConfig(t *testing.T, folder string) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load failed: %v", err)
	}
	cfg.Batch.Folder = folder
	cfg.Batch.ImageExt = ".png"
	return cfg
}

func TestReadList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(" one,two ,, three\n,"), 0o644); err != nil {
		t.Fatal(err)
	}

	names, err := ReadList(path)
	if err != nil {
		t.Fatalf("ReadList failed: %v", err)
	}
	if want := []string{"one", "two", "three"}; !slices.Equal(names, want) {
		t.Errorf("got %q, want %q", names, want)
	}
}

func TestReadList_Missing(t *testing.T) {
	if _, err := ReadList(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("ReadList should fail for a missing file")
	}
}

func TestFormatResults(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    string
	}{
		{"empty", nil, ""},
		{"single", []Record{{X: 3, Y: 4}}, "(3,4)"},
		{"several", []Record{{X: 230, Y: 100}, {}, {X: 1, Y: 2}}, "(230,100),(0,0),(1,2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatResults(tt.records); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunner_Run(t *testing.T) {
	folder := t.TempDir()
	writeStripePNG(t, filepath.Join(folder, "scene.png"), true)
	writeStripePNG(t, filepath.Join(folder, "blank.png"), false)
	if err := os.WriteFile(filepath.Join(folder, "input.txt"), []byte("scene, blank,missing"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(t, folder)
	cfg.Batch.DebugDir = filepath.Join(folder, "debug")

	var logs bytes.Buffer
	runner, err := NewRunner(cfg, log.New(&logs, "", 0))
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	records, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	scene := records[0]
	if !scene.Found || scene.X != 230 || scene.Y != 100 || scene.Scale != 17 {
		t.Errorf("scene: got %+v", scene)
	}
	if scene.Annotated != filepath.Join(folder, "scene_final.jpg") {
		t.Errorf("scene annotated path: got %q", scene.Annotated)
	}
	if records[1].Found || records[1].Error != "" || len(records[1].Scales) != 7 {
		t.Errorf("blank: got %+v", records[1])
	}
	if records[2].Error == "" {
		t.Errorf("missing image should record an error: %+v", records[2])
	}

	out, err := os.ReadFile(filepath.Join(folder, "output.txt"))
	if err != nil {
		t.Fatalf("results list not written: %v", err)
	}
	if string(out) != "(230,100),(0,0),(0,0)" {
		t.Errorf("results list: got %q", out)
	}

	for _, name := range []string{"scene_final.jpg", "debug/scene_match.png", "debug/blank_white.png"} {
		if _, err := os.Stat(filepath.Join(folder, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(folder, "blank_final.jpg")); err == nil {
		t.Error("images without a target should not be annotated")
	}

	rep, err := ReadReport(filepath.Join(folder, "results.yaml"))
	if err != nil {
		t.Fatalf("ReadReport failed: %v", err)
	}
	if rep.Total != 3 || rep.Found != 1 || rep.Failed != 1 {
		t.Errorf("report totals: got total=%d found=%d failed=%d", rep.Total, rep.Found, rep.Failed)
	}
	if rep.Records[0].Name != "scene" || rep.Records[0].Scales[2].Size != 17 || !rep.Records[0].Scales[2].Selected {
		t.Errorf("report scene record: got %+v", rep.Records[0])
	}

	if !strings.Contains(logs.String(), "Done: (230, 100)") {
		t.Errorf("log missing detection line:\n%s", logs.String())
	}
}

func TestRunner_NoAnnotation(t *testing.T) {
	folder := t.TempDir()
	writeStripePNG(t, filepath.Join(folder, "scene.png"), true)
	if err := os.WriteFile(filepath.Join(folder, "input.txt"), []byte("scene"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(t, folder)
	cfg.Batch.Annotate = false
	cfg.Batch.ReportFile = ""

	runner, err := NewRunner(cfg, log.New(&bytes.Buffer{}, "", 0))
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(folder, "scene_final.jpg")); err == nil {
		t.Error("annotation disabled but scene_final.jpg written")
	}
	if _, err := os.Stat(filepath.Join(folder, "results.yaml")); err == nil {
		t.Error("empty report_file should skip the report")
	}
}

func TestRunner_Cancelled(t *testing.T) {
	folder := t.TempDir()
	if err := os.WriteFile(filepath.Join(folder, "input.txt"), []byte("a,b"), 0o644); err != nil {
		t.Fatal(err)
	}

	runner, err := NewRunner(testConfig(t, folder), log.New(&bytes.Buffer{}, "", 0))
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, err := runner.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records after cancellation", len(records))
	}

	out, err := os.ReadFile(filepath.Join(folder, "output.txt"))
	if err != nil {
		t.Fatalf("results list not written: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("results list: got %q, want empty", out)
	}
}

func TestRunner_MissingList(t *testing.T) {
	runner, err := NewRunner(testConfig(t, t.TempDir()), log.New(&bytes.Buffer{}, "", 0))
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	if _, err := runner.Run(context.Background()); err == nil {
		t.Error("Run should fail without a list file")
	}
}

func TestNewRunner_BadMarker(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	cfg.Marker.Color = "nope"
	if _, err := NewRunner(cfg, log.New(&bytes.Buffer{}, "", 0)); err == nil {
		t.Error("NewRunner should reject an invalid marker color")
	}
}
