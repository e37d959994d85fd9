// Session state: the one active original image and its latest transform
package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"image-transform-studio/internal/imageio"
	"image-transform-studio/internal/transform"
)

// DefaultArtifactName is the file name offered for downloads
const DefaultArtifactName = "transformed_image.png"

// ErrNoImage is returned when an operation needs a loaded image
var ErrNoImage = errors.New("no image loaded")

// ImageInfo describes the loaded original
type ImageInfo struct {
	Width    int
	Height   int
	Channels int
	Source   string
}

// Artifact is a downloadable encoding of the transformed image
type Artifact struct {
	Name     string
	MimeType string
	Data     []byte
}

// Session holds at most one original image. Transforms are always computed
// from the original and never chained.
type Session struct {
	mu           sync.RWMutex
	original     gocv.Mat
	transformed  gocv.Mat
	request      transform.Request
	hasImage     bool
	info         ImageInfo
	artifactName string
	logger       logrus.FieldLogger
}

// NewSession creates an empty session. An empty artifactName selects
// DefaultArtifactName.
func NewSession(artifactName string, logger logrus.FieldLogger) *Session {
	if artifactName == "" {
		artifactName = DefaultArtifactName
	}
	return &Session{
		original:     gocv.NewMat(),
		transformed:  gocv.NewMat(),
		artifactName: artifactName,
		logger:       logger,
	}
}

// Load replaces the original when mat differs from the current one and
// resets the transformed image. Loading identical pixels is a no-op and
// reports changed as false. mat is copied; the caller keeps ownership.
func (s *Session) Load(mat gocv.Mat, source string) (changed bool, err error) {
	if err := transform.ValidateImage(mat); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasImage && imageio.Equal(s.original, mat) {
		s.logger.WithField("source", source).Debug("Loaded image matches current original, keeping state")
		return false, nil
	}

	s.original.Close()
	s.transformed.Close()

	s.original = mat.Clone()
	s.transformed = gocv.NewMat()
	s.request = transform.None()
	s.hasImage = true
	s.info = ImageInfo{
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: mat.Channels(),
		Source:   source,
	}

	s.logger.WithFields(logrus.Fields{
		"source": source,
		"width":  s.info.Width,
		"height": s.info.Height,
	}).Info("Original image replaced")
	return true, nil
}

// Apply computes req from the original and stores the result. On error the
// previously transformed image is kept.
func (s *Session) Apply(req transform.Request) (gocv.Mat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasImage {
		return gocv.NewMat(), ErrNoImage
	}

	result, err := transform.Apply(s.original, req)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"transform": req.Kind.String(),
			"error":     err,
		}).Warn("Transform rejected")
		return gocv.NewMat(), fmt.Errorf("apply %s: %w", req.Kind, err)
	}

	s.transformed.Close()
	s.transformed = result
	s.request = req

	s.logger.WithFields(logrus.Fields{
		"transform": req.Kind.String(),
		"width":     result.Cols(),
		"height":    result.Rows(),
	}).Debug("Transform applied")
	return result.Clone(), nil
}

// Reset drops the stored result and returns the session to the identity
// request. The original is kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transformed.Close()
	s.transformed = gocv.NewMat()
	s.request = transform.None()
}

// Original returns a copy of the original image, empty if none is loaded
func (s *Session) Original() gocv.Mat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasImage {
		return gocv.NewMat()
	}
	return s.original.Clone()
}

// Transformed returns a copy of the last result, empty if none
func (s *Session) Transformed() gocv.Mat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.transformed.Empty() {
		return gocv.NewMat()
	}
	return s.transformed.Clone()
}

// Request returns the request that produced the stored result
func (s *Session) Request() transform.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.request
}

// Artifact encodes the transformed image as PNG. It is only offered after a
// non-identity transform.
func (s *Session) Artifact() (Artifact, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasImage || s.transformed.Empty() || s.request.IsIdentity() {
		return Artifact{}, false, nil
	}

	data, err := imageio.EncodePNG(s.transformed)
	if err != nil {
		return Artifact{}, false, fmt.Errorf("encode artifact: %w", err)
	}
	return Artifact{Name: s.artifactName, MimeType: "image/png", Data: data}, true, nil
}

func (s *Session) HasImage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasImage
}

func (s *Session) Info() ImageInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

// Clear drops the original and any result
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.original.Close()
	s.transformed.Close()
	s.original = gocv.NewMat()
	s.transformed = gocv.NewMat()
	s.request = transform.None()
	s.hasImage = false
	s.info = ImageInfo{}
}

// Close releases all native resources
func (s *Session) Close() {
	s.Clear()
}
