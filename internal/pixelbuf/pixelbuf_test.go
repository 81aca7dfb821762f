package pixelbuf

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/fastbitmap/internal/bitmap"
)

// wrapNew creates a bitmap of the given format and wraps it read-write.
// The buffer is released when the test ends.
func wrapNew(t *testing.T, width, height int, format bitmap.PixelFormat) *PixelBuffer {
	t.Helper()
	bm, err := bitmap.New(width, height, format)
	if err != nil {
		t.Fatalf("bitmap.New failed: %v", err)
	}
	buf, err := Wrap(bm, bitmap.ReadWrite)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	t.Cleanup(func() { buf.Release() })
	return buf
}

func sampleColors() []Color {
	return []Color{
		{},
		FromARGB(255, 255, 255, 255),
		FromARGB(0, 255, 0, 0),
		FromARGB(128, 1, 2, 3),
		FromARGB(17, 200, 100, 50),
		FromRGB(0, 0, 255),
	}
}

func TestCreate(t *testing.T) {
	buf, err := Create(10, 20, bitmap.ReadWrite)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer buf.Release()

	if buf.Width() != 10 || buf.Height() != 20 {
		t.Errorf("dimensions: got %dx%d, want 10x20", buf.Width(), buf.Height())
	}
	if buf.Depth() != 32 {
		t.Errorf("Depth: got %d, want 32", buf.Depth())
	}
	if !buf.Locked() || !buf.Bitmap().Locked() {
		t.Error("Create did not lock the bitmap")
	}
}

func TestCreate_InvalidSize(t *testing.T) {
	if _, err := Create(0, 10, bitmap.ReadWrite); !errors.Is(err, bitmap.ErrInvalidSize) {
		t.Errorf("got %v, want ErrInvalidSize", err)
	}
}

func TestWrap_Nil(t *testing.T) {
	if _, err := Wrap(nil, bitmap.ReadWrite); !errors.Is(err, ErrNullBuffer) {
		t.Errorf("got %v, want ErrNullBuffer", err)
	}
}

func TestWrap_RejectsUnsupportedDepth(t *testing.T) {
	tests := []struct {
		name   string
		format bitmap.PixelFormat
		depth  int
	}{
		{"1bpp", bitmap.Format1bppIndexed, 1},
		{"4bpp", bitmap.Format4bppIndexed, 4},
		{"16bpp", bitmap.Format16bppGray, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bm, err := bitmap.New(4, 4, tt.format)
			if err != nil {
				t.Fatalf("bitmap.New failed: %v", err)
			}

			buf, err := Wrap(bm, bitmap.ReadWrite)
			if buf != nil {
				t.Error("Wrap returned a buffer for an unsupported depth")
			}
			var depthErr *UnsupportedDepthError
			if !errors.As(err, &depthErr) {
				t.Fatalf("got %v, want *UnsupportedDepthError", err)
			}
			if depthErr.Depth != tt.depth {
				t.Errorf("Depth: got %d, want %d", depthErr.Depth, tt.depth)
			}
			if !errors.Is(err, ErrUnsupportedDepth) {
				t.Error("error does not match ErrUnsupportedDepth")
			}
			if bm.Locked() {
				t.Error("rejected bitmap was left locked")
			}
		})
	}
}

func TestWrap_AlreadyLocked(t *testing.T) {
	bm, _ := bitmap.New(2, 2, bitmap.Format32bppARGB)
	first, err := Wrap(bm, bitmap.ReadWrite)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	defer first.Release()

	if _, err := Wrap(bm, bitmap.ReadOnly); !errors.Is(err, bitmap.ErrAlreadyLocked) {
		t.Errorf("second Wrap: got %v, want ErrAlreadyLocked", err)
	}
}

func TestRoundTrip_32bpp(t *testing.T) {
	buf := wrapNew(t, 3, 2, bitmap.Format32bppARGB)

	for _, c := range sampleColors() {
		for x := 0; x < 3; x++ {
			for y := 0; y < 2; y++ {
				buf.SetPixel(x, y, c)
				if got := buf.GetPixel(x, y); got != c {
					t.Errorf("(%d,%d): got %v, want %v", x, y, got, c)
				}
			}
		}
	}
}

func TestRoundTrip_32bpp_ByteLayout(t *testing.T) {
	buf := wrapNew(t, 2, 2, bitmap.Format32bppARGB)
	buf.SetPixel(1, 1, FromARGB(4, 3, 2, 1))

	i := ((1 * 2) + 1) * 4
	got := buf.pix[i : i+4]
	if got[0] != 1 || got[1] != 2 || got[2] != 3 || got[3] != 4 {
		t.Errorf("bytes at offset %d: got %v, want [1 2 3 4] (B,G,R,A)", i, got)
	}
}

func TestAlphaNormalization_24bpp(t *testing.T) {
	buf := wrapNew(t, 2, 2, bitmap.Format24bppRGB)

	for _, c := range sampleColors() {
		buf.SetPixel(1, 0, c)
		got := buf.GetPixel(1, 0)
		want := FromRGB(c.R, c.G, c.B)
		if got != want {
			t.Errorf("set %v: got %v, want %v", c, got, want)
		}
	}

	if len(buf.pix) != 2*2*3 {
		t.Errorf("locked memory: got %d bytes, want 12", len(buf.pix))
	}
}

func TestChannelCollapse_8bpp(t *testing.T) {
	buf := wrapNew(t, 2, 2, bitmap.Format8bppGray)

	tests := []Color{
		FromRGB(10, 20, 30),
		FromARGB(0, 255, 0, 7),
		Gray(128),
	}
	for _, c := range tests {
		buf.SetPixel(0, 1, c)
		got := buf.GetPixel(0, 1)
		if got != Gray(c.B) {
			t.Errorf("set %v: got %v, want gray %d", c, got, c.B)
		}
	}
}

func TestOffsetArithmetic(t *testing.T) {
	for _, format := range []bitmap.PixelFormat{bitmap.Format8bppGray, bitmap.Format24bppRGB, bitmap.Format32bppARGB} {
		t.Run(format.String(), func(t *testing.T) {
			buf := wrapNew(t, 5, 3, format)
			buf.SetPixel(4, 2, Gray(0xee))

			count := format.BitsPerPixel() / 8
			want := ((2 * 5) + 4) * count
			for i, v := range buf.pix {
				if v != 0 && (i < want || i >= want+count) {
					t.Errorf("byte %d written, want only [%d,%d)", i, want, want+count)
				}
			}
			if buf.pix[want] != 0xee {
				t.Errorf("offset %d: got %#x, want 0xee", want, buf.pix[want])
			}
		})
	}
}

func TestRelease_Idempotent(t *testing.T) {
	bm, _ := bitmap.New(2, 2, bitmap.Format32bppARGB)
	buf, err := Wrap(bm, bitmap.ReadWrite)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	buf.SetPixel(0, 0, FromRGB(1, 2, 3))

	if err := buf.Release(); err != nil {
		t.Fatalf("first Release failed: %v", err)
	}
	if err := buf.Release(); err != nil {
		t.Errorf("second Release: got %v, want nil", err)
	}
	if buf.Locked() || bm.Locked() {
		t.Error("bitmap still locked after Release")
	}

	// The bitmap can be locked again, and the write was committed once.
	again, err := Wrap(bm, bitmap.ReadOnly)
	if err != nil {
		t.Fatalf("Wrap after release failed: %v", err)
	}
	defer again.Release()
	if got := again.GetPixel(0, 0); got != FromRGB(1, 2, 3) {
		t.Errorf("pixel after release: got %v", got)
	}
	if err := buf.Release(); err != nil {
		t.Errorf("Release after re-lock: got %v, want nil", err)
	}
	if !bm.Locked() {
		t.Error("stale Release unlocked the new buffer's lock")
	}
}

func TestRelease_LockAlreadyGone(t *testing.T) {
	bm, _ := bitmap.New(2, 2, bitmap.Format32bppARGB)
	buf, err := Wrap(bm, bitmap.ReadWrite)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	if err := bm.UnlockBits(buf.data); err != nil {
		t.Fatalf("UnlockBits failed: %v", err)
	}

	if err := buf.Release(); !errors.Is(err, bitmap.ErrNotLocked) {
		t.Errorf("Release: got %v, want ErrNotLocked", err)
	}
	if err := buf.Release(); err != nil {
		t.Errorf("second Release: got %v, want nil", err)
	}
	if buf.Locked() || bm.Locked() {
		t.Error("lock reported after a failed Release")
	}

	again, err := Wrap(bm, bitmap.ReadOnly)
	if err != nil {
		t.Fatalf("Wrap after failed Release: %v", err)
	}
	again.Release()
}

func TestRelease_ModeCommit(t *testing.T) {
	bm, _ := bitmap.New(1, 1, bitmap.Format32bppARGB)

	ro, _ := Wrap(bm, bitmap.ReadOnly)
	ro.SetPixel(0, 0, FromRGB(9, 9, 9))
	ro.Release()
	if got := FromColor(bm.At(0, 0)); got != (Color{}) {
		t.Errorf("read-only write reached bitmap: %v", got)
	}

	rw, _ := Wrap(bm, bitmap.ReadWrite)
	rw.SetPixel(0, 0, FromRGB(9, 9, 9))
	rw.Release()
	if got := FromColor(bm.At(0, 0)); got != FromRGB(9, 9, 9) {
		t.Errorf("read-write write: got %v", got)
	}
}

func TestGetPixel_AfterReleasePanics(t *testing.T) {
	buf, _ := Create(1, 1, bitmap.ReadWrite)
	buf.Release()

	defer func() {
		if recover() == nil {
			t.Error("GetPixel after Release did not panic")
		}
	}()
	buf.GetPixel(0, 0)
}

func TestTransformPixels_OrderAndImmediacy(t *testing.T) {
	buf := wrapNew(t, 2, 2, bitmap.Format32bppARGB)
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			buf.SetPixel(x, y, FromRGB(0, 0, 0))
		}
	}

	var visited []image.Point
	buf.TransformPixels(func(x, y int, c Color) Color {
		visited = append(visited, image.Pt(x, y))
		return FromRGB(uint8(x*10), uint8(y*10), 0)
	})

	wantOrder := []image.Point{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	if len(visited) != len(wantOrder) {
		t.Fatalf("visited %d pixels, want %d", len(visited), len(wantOrder))
	}
	for i, p := range wantOrder {
		if visited[i] != p {
			t.Errorf("visit %d: got %v, want %v", i, visited[i], p)
		}
	}

	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			want := FromRGB(uint8(x*10), uint8(y*10), 0)
			if got := buf.GetPixel(x, y); got != want {
				t.Errorf("(%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestTransformPixels_SeesOwnWrites(t *testing.T) {
	buf := wrapNew(t, 1, 3, bitmap.Format8bppGray)

	// Each pixel becomes the previous pixel plus one, which only works if
	// the previous write already landed.
	var prev Color
	buf.TransformPixels(func(x, y int, c Color) Color {
		if y > 0 {
			prev = buf.GetPixel(x, y-1)
		}
		return Gray(prev.B + 1)
	})

	for y := 0; y < 3; y++ {
		if got := buf.GetPixel(0, y).B; got != uint8(y+1) {
			t.Errorf("y=%d: got %d, want %d", y, got, y+1)
		}
	}
}

func TestForEachPixel(t *testing.T) {
	buf := wrapNew(t, 3, 2, bitmap.Format24bppRGB)
	buf.SetPixel(2, 1, FromRGB(5, 6, 7))

	var visited []image.Point
	var found Color
	buf.ForEachPixel(func(x, y int, c Color) {
		visited = append(visited, image.Pt(x, y))
		if x == 2 && y == 1 {
			found = c
		}
	})

	want := []image.Point{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1}}
	if len(visited) != len(want) {
		t.Fatalf("visited %d pixels, want %d", len(visited), len(want))
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visit %d: got %v, want %v", i, visited[i], want[i])
		}
	}
	if found != FromRGB(5, 6, 7) {
		t.Errorf("color at (2,1): got %v", found)
	}
}

func TestClone_Isolation(t *testing.T) {
	buf := wrapNew(t, 2, 2, bitmap.Format32bppARGB)
	buf.SetPixel(1, 1, FromARGB(50, 1, 2, 3))

	clone, err := buf.Clone()
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}
	defer clone.Release()

	if clone.Bitmap() == buf.Bitmap() {
		t.Fatal("Clone shares the bitmap")
	}
	if got := clone.GetPixel(1, 1); got != FromARGB(50, 1, 2, 3) {
		t.Errorf("cloned pixel: got %v", got)
	}

	buf.SetPixel(1, 1, FromRGB(9, 9, 9))
	if got := clone.GetPixel(1, 1); got != FromARGB(50, 1, 2, 3) {
		t.Errorf("clone changed after original write: %v", got)
	}

	clone.SetPixel(0, 0, FromRGB(7, 7, 7))
	if got := buf.GetPixel(0, 0); got != (Color{}) {
		t.Errorf("original changed after clone write: %v", got)
	}
}

func TestClone_NormalizesTo32bpp(t *testing.T) {
	buf := wrapNew(t, 2, 1, bitmap.Format8bppGray)
	buf.SetPixel(1, 0, Gray(99))

	clone, err := buf.Clone()
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}
	defer clone.Release()

	if clone.Depth() != 32 || clone.Bitmap().Format() != bitmap.Format32bppARGB {
		t.Errorf("clone depth: got %d (%v), want 32", clone.Depth(), clone.Bitmap().Format())
	}
	if got := clone.GetPixel(1, 0); got != Gray(99) {
		t.Errorf("cloned pixel: got %v, want %v", got, Gray(99))
	}
}

func TestClone_NullBuffer(t *testing.T) {
	var empty PixelBuffer
	if _, err := empty.Clone(); !errors.Is(err, ErrNullBuffer) {
		t.Errorf("zero buffer: got %v, want ErrNullBuffer", err)
	}
	if empty.Width() != 0 || empty.Height() != 0 {
		t.Errorf("zero buffer dimensions: got %dx%d", empty.Width(), empty.Height())
	}

	buf, _ := Create(1, 1, bitmap.ReadWrite)
	buf.Release()
	if _, err := buf.Clone(); !errors.Is(err, ErrNullBuffer) {
		t.Errorf("released buffer: got %v, want ErrNullBuffer", err)
	}
}

func TestSave_FlushesPendingWrites(t *testing.T) {
	buf, err := Create(3, 3, bitmap.ReadWrite)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer buf.Release()
	buf.SetPixel(2, 1, FromRGB(255, 128, 0))

	path := filepath.Join(t.TempDir(), "out.png")
	if err := buf.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open saved file: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("failed to decode saved file: %v", err)
	}

	r, g, b, a := img.At(2, 1).RGBA()
	if r>>8 != 255 || g>>8 != 128 || b>>8 != 0 || a>>8 != 255 {
		t.Errorf("saved pixel: got (%d,%d,%d,%d)", r>>8, g>>8, b>>8, a>>8)
	}
	if !buf.Locked() {
		t.Error("Save released the buffer")
	}
}

func TestSave_Errors(t *testing.T) {
	var empty PixelBuffer
	if err := empty.Save("x.png"); !errors.Is(err, ErrNullBuffer) {
		t.Errorf("zero buffer: got %v, want ErrNullBuffer", err)
	}

	buf := wrapNew(t, 1, 1, bitmap.Format32bppARGB)
	if err := buf.Save(filepath.Join(t.TempDir(), "out.unknown")); err == nil {
		t.Error("Save should fail for an unknown extension")
	}
}

func TestWrap_DecodedImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(1, 0, color.Gray{Y: 200})

	buf, err := Wrap(bitmap.FromImage(src), bitmap.ReadOnly)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	defer buf.Release()

	if buf.Depth() != 8 {
		t.Errorf("Depth: got %d, want 8", buf.Depth())
	}
	if got := buf.GetPixel(1, 0); got != Gray(200) {
		t.Errorf("got %v, want %v", got, Gray(200))
	}
}

func BenchmarkGetPixel(b *testing.B) {
	for _, format := range []bitmap.PixelFormat{bitmap.Format8bppGray, bitmap.Format24bppRGB, bitmap.Format32bppARGB} {
		b.Run(format.String(), func(b *testing.B) {
			bm, _ := bitmap.New(256, 256, format)
			buf, _ := Wrap(bm, bitmap.ReadOnly)
			defer buf.Release()

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = buf.GetPixel(i&255, (i>>8)&255)
			}
		})
	}
}

func BenchmarkTransformPixels(b *testing.B) {
	buf, _ := Create(512, 512, bitmap.ReadWrite)
	defer buf.Release()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf.TransformPixels(func(x, y int, c Color) Color {
			return FromARGB(c.A, 255-c.R, 255-c.G, 255-c.B)
		})
	}
	b.SetBytes(512 * 512 * 4)
}
