package watermark

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"photo-watermarker/internal/config"
	"photo-watermarker/internal/domain"
	"photo-watermarker/internal/fonts"
	"photo-watermarker/internal/logo"
	"photo-watermarker/internal/usecase/processor"

	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestMain(m *testing.M) {
	zlog.Init()
	os.Exit(m.Run())
}

type stubReader map[string]string

func (s stubReader) Read(context.Context, string) (map[string]string, error) {
	return s, nil
}

type countingCopier struct {
	calls atomic.Int32
}

func (c *countingCopier) CopyTags(context.Context, string, string) error {
	c.calls.Add(1)
	return nil
}

func newService(t *testing.T, copier *countingCopier) *Service {
	t.Helper()
	dir := t.TempDir()

	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Base.Font = write("regular.ttf", goregular.TTF)
	cfg.Base.AlternativeFont = cfg.Base.Font
	cfg.Base.BoldFont = write("bold.ttf", gobold.TTF)
	cfg.Base.AlternativeBoldFont = cfg.Base.BoldFont
	cfg.Logo.Directory = dir
	cfg.Logo.Default = filepath.Join(dir, "default.png")
	if err := imaging.Save(imaging.New(50, 50, color.NRGBA{A: 0xff}), cfg.Logo.Default); err != nil {
		t.Fatal(err)
	}

	fontSet, err := fonts.Load(cfg, &zlog.Logger)
	if err != nil {
		t.Fatal(err)
	}
	logos, err := logo.NewCache(cfg.Logo.Directory, cfg.Logo.Default, &zlog.Logger)
	if err != nil {
		t.Fatal(err)
	}

	proc := processor.NewImageProcessor(cfg, fontSet, logos, &zlog.Logger)
	reader := stubReader{"Make": "Sony", "CameraModelName": "ILCE-7M3", "FNumber": "2.8"}
	if copier == nil {
		return NewService(cfg, proc, reader, nil, &zlog.Logger)
	}
	return NewService(cfg, proc, reader, copier, &zlog.Logger)
}

func writePhotos(t *testing.T, dir string, n, corrupt int) []string {
	t.Helper()
	var files []string
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, "photo"+string(rune('a'+i))+".jpg")
		if i == corrupt {
			if err := os.WriteFile(path, []byte("not a jpeg"), 0o644); err != nil {
				t.Fatal(err)
			}
		} else if err := imaging.Save(imaging.New(120, 80, color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}), path); err != nil {
			t.Fatal(err)
		}
		files = append(files, path)
	}
	return files
}

func TestBatchWithCorruptFile(t *testing.T) {
	svc := newService(t, nil)
	in, out := t.TempDir(), t.TempDir()
	files := writePhotos(t, in, 10, 4)

	report, err := NewBatch(svc, domain.DefaultConcurrency, &zlog.Logger).Run(context.Background(), files, out)
	if err != nil {
		t.Fatal(err)
	}

	if report.Success {
		t.Error("report succeeded with a corrupt input")
	}
	if len(report.Processed) != 9 || len(report.Failed) != 1 {
		t.Fatalf("processed %d, failed %d", len(report.Processed), len(report.Failed))
	}
	if report.Failed[0].Path != files[4] {
		t.Errorf("failed path = %s, want %s", report.Failed[0].Path, files[4])
	}
	if report.Err() == nil {
		t.Error("Err() = nil for a failed report")
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 9 {
		t.Errorf("output has %d files, want 9", len(entries))
	}
	if report.Bytes == 0 {
		t.Error("written size not recorded")
	}
}

func TestProcessFile(t *testing.T) {
	copier := &countingCopier{}
	svc := newService(t, copier)
	files := writePhotos(t, t.TempDir(), 1, -1)
	dst := filepath.Join(t.TempDir(), "out.jpg")

	if err := svc.ProcessFile(context.Background(), files[0], dst); err != nil {
		t.Fatal(err)
	}

	img, err := imaging.Open(dst)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() <= 120 || b.Dy() <= 80 {
		t.Errorf("output %v is not larger than the source", b)
	}
	if copier.calls.Load() != 1 {
		t.Errorf("copier called %d times", copier.calls.Load())
	}
}

func TestProcessFileWithLayout(t *testing.T) {
	svc := newService(t, nil)
	files := writePhotos(t, t.TempDir(), 1, -1)
	dst := filepath.Join(t.TempDir(), "out.jpg")

	if err := svc.ProcessFileWithLayout(context.Background(), files[0], dst, domain.LayoutSquare); err != nil {
		t.Fatal(err)
	}

	img, err := imaging.Open(dst)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 120 {
		t.Errorf("square output is %v", b)
	}
}

func TestProcessFileRejectsExtension(t *testing.T) {
	svc := newService(t, nil)
	err := svc.ProcessFile(context.Background(), "photo.gif", filepath.Join(t.TempDir(), "out.gif"))
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("got %v, want ErrUnsupportedFile", err)
	}
}

type panicky struct{}

func (panicky) ProcessFile(_ context.Context, src, _ string) error {
	if filepath.Base(src) == "b.jpg" {
		panic("decoder exploded")
	}
	return nil
}

func TestBatchRecoversPanics(t *testing.T) {
	report, err := NewBatch(panicky{}, 2, &zlog.Logger).Run(context.Background(), []string{"a.jpg", "b.jpg", "c.jpg"}, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if report.Success || len(report.Failed) != 1 || !errors.Is(report.Failed[0].Err, ErrPanic) {
		t.Errorf("report = %+v", report)
	}
	if len(report.Processed) != 2 {
		t.Errorf("processed = %v", report.Processed)
	}
}

func TestBatchNoInput(t *testing.T) {
	if _, err := NewBatch(panicky{}, 1, &zlog.Logger).Run(context.Background(), nil, t.TempDir()); !errors.Is(err, ErrNoInput) {
		t.Errorf("got %v, want ErrNoInput", err)
	}
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.JPG", "a.jpeg", "c.png", "notes.txt", "d.gif"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := Collect(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a.jpeg", "b.JPG", "c.png"}
	if len(files) != len(want) {
		t.Fatalf("files = %v", files)
	}
	for i, f := range files {
		if filepath.Base(f) != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, filepath.Base(f), want[i])
		}
	}
}
