package processor

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"photo-watermarker/internal/config"
	"photo-watermarker/internal/container"
	"photo-watermarker/internal/domain"
	"photo-watermarker/internal/fonts"
	"photo-watermarker/internal/logo"

	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestMain(m *testing.M) {
	zlog.Init()
	os.Exit(m.Run())
}

type recordingApplier struct {
	applied []domain.StageKind
	failOn  domain.StageKind
}

func (r *recordingApplier) Apply(_ context.Context, stage domain.Stage, _ Photo) error {
	r.applied = append(r.applied, stage.Kind)
	if stage.Kind == r.failOn {
		return errors.New("boom")
	}
	return nil
}

func baseConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Base.Shadow.Enable = false
	cfg.Base.WhiteMargin.Enable = false
	cfg.Base.PaddingWithOriginalRatio.Enable = false
	return cfg
}

func kinds(ch *Chain) []domain.StageKind {
	var out []domain.StageKind
	for _, s := range ch.Stages() {
		out = append(out, s.Kind)
	}
	return out
}

func TestBuildChain(t *testing.T) {
	tests := []struct {
		name    string
		layout  domain.Layout
		shadow  bool
		margin  bool
		padding bool
		want    []domain.StageKind
	}{
		{
			name:   "standard only",
			layout: domain.LayoutWatermarkLeftLogo,
			want:   []domain.StageKind{domain.StageWatermark},
		},
		{
			name:    "all toggles on standard",
			layout:  domain.LayoutWatermarkRightLogo,
			shadow:  true,
			margin:  true,
			padding: true,
			want: []domain.StageKind{
				domain.StageShadow,
				domain.StageWatermark,
				domain.StageMargin,
				domain.StagePaddingToOriginalRatio,
			},
		},
		{
			name:    "square skips shadow and ratio padding",
			layout:  domain.LayoutSquare,
			shadow:  true,
			margin:  true,
			padding: true,
			want:    []domain.StageKind{domain.StageSquare},
		},
		{
			name:    "margin only with a watermark strip",
			layout:  domain.LayoutSimple,
			shadow:  true,
			margin:  true,
			padding: true,
			want: []domain.StageKind{
				domain.StageShadow,
				domain.StageSimple,
				domain.StagePaddingToOriginalRatio,
			},
		},
		{
			name:   "unknown layout falls back to shadow",
			layout: "polaroid",
			margin: true,
			want:   []domain.StageKind{domain.StageShadow},
		},
		{
			name:   "custom gets margin",
			layout: domain.LayoutCustom,
			margin: true,
			want:   []domain.StageKind{domain.StageWatermark, domain.StageMargin},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig(t)
			cfg.Layout.Type = tt.layout
			cfg.Base.Shadow.Enable = tt.shadow
			cfg.Base.WhiteMargin.Enable = tt.margin
			cfg.Base.PaddingWithOriginalRatio.Enable = tt.padding

			got := kinds(BuildChain(cfg, &recordingApplier{}))
			if !slices.Equal(got, tt.want) {
				t.Errorf("stages = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildChainMarginFill(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Base.WhiteMargin.Enable = true
	cfg.Layout.Type = domain.LayoutDarkWatermarkLeftLogo

	stages := BuildChain(cfg, &recordingApplier{}).Stages()
	if last := stages[len(stages)-1]; last.Kind != domain.StageMargin || last.Fill != darkBg {
		t.Errorf("margin stage = %+v, want dark fill", last)
	}
}

func TestRegistryCoversEveryLayout(t *testing.T) {
	cfg := baseConfig(t)
	for _, layout := range domain.Layouts {
		stage, ok := LayoutStage(cfg, layout)
		if !ok {
			t.Errorf("layout %s has no stage", layout)
			continue
		}
		if (stage.Kind == domain.StageWatermark) != layout.HasWatermarkStrip() {
			t.Errorf("layout %s maps to %s", layout, stage.Kind)
		}
		if stage.Kind == domain.StageWatermark && stage.Style == nil {
			t.Errorf("layout %s has no style", layout)
		}
	}
}

func TestCustomStyle(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Layout.ForegroundColor = "#123456"
	cfg.Layout.BackgroundColor = "#fafafa"
	cfg.Layout.Elements.LeftTop = domain.Element{Name: domain.FieldModel, Bold: true, Color: "#ff0000"}
	cfg.Layout.Elements.RightBottom = domain.Element{Name: domain.FieldDate}
	cfg.Logo.Enable = false
	cfg.Logo.Position = domain.LogoRight

	stage, _ := LayoutStage(cfg, domain.LayoutCustom)
	s := stage.Style

	if s.LogoEnabled || s.LogoPosition != domain.LogoRight || s.Background != "#fafafa" {
		t.Errorf("style = %+v", s)
	}
	if s.LeftTop != (domain.SlotStyle{Color: "#ff0000", Bold: true}) {
		t.Errorf("left top = %+v", s.LeftTop)
	}
	if s.RightBottom != (domain.SlotStyle{Color: "#123456"}) {
		t.Errorf("right bottom = %+v", s.RightBottom)
	}
}

func TestPresetStylesAreIndependent(t *testing.T) {
	cfg := baseConfig(t)
	a, _ := LayoutStage(cfg, domain.LayoutWatermarkLeftLogo)
	a.Style.Background = "#000000"

	b, _ := LayoutStage(cfg, domain.LayoutWatermarkLeftLogo)
	if b.Style.Background != standardBg {
		t.Error("preset style shared between stages")
	}
}

func TestChainStopsAtFirstError(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Base.Shadow.Enable = true
	cfg.Base.WhiteMargin.Enable = true

	applier := &recordingApplier{failOn: domain.StageWatermark}
	err := BuildChain(cfg, applier).Process(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !slices.Equal(applier.applied, []domain.StageKind{domain.StageShadow, domain.StageWatermark}) {
		t.Errorf("applied = %v", applier.applied)
	}
}

type fixture struct {
	cfg   *config.Config
	proc  *ImageProcessor
	photo string
}

func newFixture(t *testing.T, w, h int, mutate func(*config.Config)) fixture {
	t.Helper()
	dir := t.TempDir()

	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	cfg := baseConfig(t)
	cfg.Base.Font = write("regular.ttf", goregular.TTF)
	cfg.Base.AlternativeFont = cfg.Base.Font
	cfg.Base.BoldFont = write("bold.ttf", gobold.TTF)
	cfg.Base.AlternativeBoldFont = cfg.Base.BoldFont

	logoDir := filepath.Join(dir, "logos")
	if err := os.Mkdir(logoDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg.Logo.Directory = logoDir
	cfg.Logo.Default = filepath.Join(logoDir, "fujifilm.png")
	if err := imaging.Save(imaging.New(200, 200, color.NRGBA{}), cfg.Logo.Default); err != nil {
		t.Fatal(err)
	}

	photo := filepath.Join(dir, "photo.jpg")
	if err := imaging.Save(imaging.New(w, h, color.NRGBA{R: 0x30, G: 0x70, B: 0x50, A: 0xff}), photo); err != nil {
		t.Fatal(err)
	}

	if mutate != nil {
		mutate(cfg)
	}

	fontSet, err := fonts.Load(cfg, &zlog.Logger)
	if err != nil {
		t.Fatal(err)
	}
	logos, err := logo.NewCache(cfg.Logo.Directory, cfg.Logo.Default, &zlog.Logger)
	if err != nil {
		t.Fatal(err)
	}

	return fixture{
		cfg:   cfg,
		proc:  NewImageProcessor(cfg, fontSet, logos, &zlog.Logger),
		photo: photo,
	}
}

type stubReader map[string]string

func (s stubReader) Read(context.Context, string) (map[string]string, error) {
	return s, nil
}

func TestStandardLayoutEndToEnd(t *testing.T) {
	none := domain.Element{Name: domain.FieldNone}
	f := newFixture(t, 4000, 3000, func(cfg *config.Config) {
		cfg.Layout.Type = domain.LayoutWatermarkLeftLogo
		cfg.Layout.Elements = domain.Elements{
			LeftTop:     none,
			LeftBottom:  domain.Element{Name: domain.FieldModel},
			RightTop:    none,
			RightBottom: none,
		}
	})

	c, err := container.Open(context.Background(), f.photo, stubReader{"Make": "Fujifilm", "CameraModelName": "X-T4"}, &zlog.Logger)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := BuildChain(f.cfg, f.proc).Process(context.Background(), c); err != nil {
		t.Fatal(err)
	}

	// ratio 4:3 with font levels 1+1: strip is 1000/0.08 = 12500 wide, scaled
	// to 4000 gives 320 rows.
	if c.Width() != 4000 || c.Height() != 3320 {
		t.Fatalf("size = %dx%d, want 4000x3320", c.Width(), c.Height())
	}

	if !hasInk(c.Working(), image.Rect(0, 3000, 2000, 3320)) {
		t.Error("model text not rendered in the left column")
	}
	if hasInk(c.Working(), image.Rect(2000, 3000, 4000, 3320)) {
		t.Error("unexpected content in the empty right column")
	}
}

func TestEveryLayoutRuns(t *testing.T) {
	f := newFixture(t, 600, 400, func(cfg *config.Config) {
		cfg.Base.Shadow.Enable = true
		cfg.Base.WhiteMargin.Enable = true
		cfg.Base.PaddingWithOriginalRatio.Enable = true
	})

	for _, layout := range append(slices.Clone(domain.Layouts), "unknown") {
		t.Run(string(layout), func(t *testing.T) {
			c, err := container.Open(context.Background(), f.photo, stubReader{}, &zlog.Logger)
			if err != nil {
				t.Fatal(err)
			}
			defer c.Close()

			if err := BuildChainFor(f.cfg, layout, f.proc).Process(context.Background(), c); err != nil {
				t.Fatal(err)
			}
			if c.Width() < 600 || c.Height() < 400 {
				t.Errorf("result shrank to %dx%d", c.Width(), c.Height())
			}
		})
	}
}

func TestApplyUnknownStage(t *testing.T) {
	f := newFixture(t, 10, 10, nil)
	c, err := container.Open(context.Background(), f.photo, stubReader{}, &zlog.Logger)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := f.proc.Apply(context.Background(), domain.Stage{Kind: "sepia"}, c); !errors.Is(err, ErrUnknownStage) {
		t.Errorf("got %v, want ErrUnknownStage", err)
	}
}

// hasInk reports whether r contains a pixel darker than the white strip.
func hasInk(img *image.NRGBA, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if int(c.R)+int(c.G)+int(c.B) < 3*200 {
				return true
			}
		}
	}
	return false
}
