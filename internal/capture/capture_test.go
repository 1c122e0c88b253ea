package capture

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(w, h)))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solidImage(w, h), nil))
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte, mod time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	require.NoError(t, os.Chtimes(path, mod, mod))
	return path
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name       string
		data       func(t *testing.T) []byte
		wantWidth  int
		wantHeight int
		wantErr    bool
	}{
		{
			name:       "small png kept at size",
			data:       func(t *testing.T) []byte { return encodePNG(t, 40, 30) },
			wantWidth:  40,
			wantHeight: 30,
		},
		{
			name:       "wide jpeg downscaled",
			data:       func(t *testing.T) []byte { return encodeJPEG(t, 2048, 1024) },
			wantWidth:  1024,
			wantHeight: 512,
		},
		{
			name:       "tall png downscaled",
			data:       func(t *testing.T) []byte { return encodePNG(t, 600, 1200) },
			wantWidth:  512,
			wantHeight: 1024,
		},
		{
			name:    "not an image",
			data:    func(*testing.T) []byte { return []byte("hello, world") },
			wantErr: true,
		},
		{
			name:    "gif rejected",
			data:    func(*testing.T) []byte { return []byte("GIF89a\x01\x00\x01\x00") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := Process(bytes.NewReader(tt.data(t)))
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrCaptureFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "image/jpeg", frame.MIME)
			assert.Equal(t, tt.wantWidth, frame.Width)
			assert.Equal(t, tt.wantHeight, frame.Height)

			cfg, format, err := image.DecodeConfig(bytes.NewReader(frame.Data))
			require.NoError(t, err)
			assert.Equal(t, "jpeg", format)
			assert.Equal(t, tt.wantWidth, cfg.Width)
		})
	}
}

func TestFrame_DataURL(t *testing.T) {
	frame := Frame{Data: []byte{0xff, 0xd8, 0xff}, MIME: "image/jpeg"}

	url := frame.DataURL()

	require.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	assert.Equal(t, frame.Data, decoded)
	assert.True(t, Frame{}.IsZero())
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "chair.png", encodePNG(t, 10, 10), time.Now())

	frame, err := FromFile(path)
	require.NoError(t, err)
	assert.False(t, frame.IsZero())

	_, err = FromFile(filepath.Join(dir, "missing.jpg"))
	assert.ErrorIs(t, err, common.ErrCaptureFailed)
}

func TestDirCamera_Start(t *testing.T) {
	dir := t.TempDir()
	cam := NewDirCamera(dir, "")

	stream, err := cam.Start(context.Background(), FacingEnvironment)
	require.NoError(t, err)
	require.NotNil(t, stream)

	_, err = cam.Start(context.Background(), FacingUser)
	assert.ErrorIs(t, err, ErrCameraUnavailable)

	missing := NewDirCamera(filepath.Join(dir, "nope"), "")
	_, err = missing.Start(context.Background(), FacingEnvironment)
	assert.ErrorIs(t, err, ErrCameraUnavailable)
}

func TestDirCamera_CapturesNewestImage(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	writeFile(t, dir, "old.png", encodePNG(t, 10, 10), base)
	writeFile(t, dir, "new.png", encodePNG(t, 20, 16), base.Add(time.Minute))
	writeFile(t, dir, "notes.txt", []byte("ignore me"), base.Add(2*time.Minute))

	stream, err := NewDirCamera(dir, "").Start(context.Background(), FacingEnvironment)
	require.NoError(t, err)

	frame, err := stream.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, frame.Width)
	assert.Equal(t, 16, frame.Height)

	require.NoError(t, stream.Stop())
	_, err = stream.Capture(context.Background())
	assert.ErrorIs(t, err, ErrStreamStopped)
}

func TestDirCamera_EmptyDirectory(t *testing.T) {
	stream, err := NewDirCamera(t.TempDir(), "").Start(context.Background(), FacingEnvironment)
	require.NoError(t, err)

	_, err = stream.Capture(context.Background())
	assert.ErrorIs(t, err, ErrCameraUnavailable)
}

type fakeStream struct {
	err   error
	frame Frame
	stops int
}

func (s *fakeStream) Capture(context.Context) (Frame, error) {
	return s.frame, s.err
}

func (s *fakeStream) Stop() error {
	s.stops++
	return nil
}

type fakeCamera struct {
	streams  map[Facing]*fakeStream
	startErr map[Facing]error
	started  []Facing
}

func (c *fakeCamera) Start(_ context.Context, facing Facing) (Stream, error) {
	c.started = append(c.started, facing)
	if err := c.startErr[facing]; err != nil {
		return nil, err
	}
	return c.streams[facing], nil
}

func TestSession_StopsOnSuccessfulCapture(t *testing.T) {
	stream := &fakeStream{frame: Frame{Data: []byte{1}, MIME: "image/jpeg"}}
	cam := &fakeCamera{streams: map[Facing]*fakeStream{FacingEnvironment: stream}}

	session, err := Open(context.Background(), cam, FacingEnvironment)
	require.NoError(t, err)

	frame, err := session.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, frame.Data)
	assert.Equal(t, 1, stream.stops)

	require.NoError(t, session.Close())
	assert.Equal(t, 1, stream.stops, "close after capture must not stop twice")

	_, err = session.Capture(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSession_FailedCaptureKeepsStreamOpen(t *testing.T) {
	stream := &fakeStream{err: errors.New("blurry")}
	cam := &fakeCamera{streams: map[Facing]*fakeStream{FacingEnvironment: stream}}

	session, err := Open(context.Background(), cam, FacingEnvironment)
	require.NoError(t, err)

	_, err = session.Capture(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, stream.stops)

	require.NoError(t, session.Close())
	require.NoError(t, session.Close())
	assert.Equal(t, 1, stream.stops)
}

func TestOpen_UnavailableCamera(t *testing.T) {
	cam := &fakeCamera{startErr: map[Facing]error{FacingUser: ErrCameraUnavailable}}

	session, err := Open(context.Background(), cam, FacingUser)
	assert.Nil(t, session)
	assert.ErrorIs(t, err, ErrCameraUnavailable)
	assert.Equal(t, []Facing{FacingUser}, cam.started)
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeFile(t, dir, "b.JPG", encodeJPEG(t, 4, 4), now)
	writeFile(t, dir, "a.png", encodePNG(t, 4, 4), now)
	writeFile(t, dir, "c.txt", []byte("x"), now)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o700))

	paths, err := ListImages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.png"), filepath.Join(dir, "b.JPG")}, paths)
}

func TestFacing_Toggle(t *testing.T) {
	assert.Equal(t, FacingUser, FacingEnvironment.Toggle())
	assert.Equal(t, FacingEnvironment, FacingUser.Toggle())
}
