package download

//go:generate $MOCKGEN -source=verifier.go -destination=mocks/verifier_mock.go

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
	"github.com/oshokin/id3v2/v2"

	"github.com/oshokin/spotisaver/internal/client/ffmpeg"
	"github.com/oshokin/spotisaver/internal/logger"
)

// VerifyRequest describes a freshly written output file.
type VerifyRequest struct {
	Path     string
	Format   string
	Metadata ffmpeg.Metadata
	// CoverPath is the artwork that was muxed in, if any.
	CoverPath string
}

// VerifyResult reports what the verifier found.
type VerifyResult struct {
	Size int64
	// TagsRepaired is set when missing tags had to be written after muxing.
	TagsRepaired bool
}

// TagVerifier is the final gate of track processing.
type TagVerifier interface {
	// Verify fails when the output file is missing or empty. Tags that ffmpeg
	// dropped are written back; a failed repair is logged, not returned.
	Verify(ctx context.Context, req *VerifyRequest) (*VerifyResult, error)
}

// TagVerifierImpl reads tags back with id3v2 for mp3 and go-flac for flac.
// wav files are only checked for existence and size.
type TagVerifierImpl struct{}

// NewTagVerifier creates a TagVerifier.
func NewTagVerifier() TagVerifier {
	return new(TagVerifierImpl)
}

// Verify checks req.Path.
func (v *TagVerifierImpl) Verify(ctx context.Context, req *VerifyRequest) (*VerifyResult, error) {
	info, err := os.Stat(req.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrOutputMissing, req.Path)
		}

		return nil, err
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrOutputMissing, req.Path)
	}

	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrOutputEmpty, req.Path)
	}

	result := &VerifyResult{Size: info.Size()}

	var repaired bool

	switch req.Format {
	case FormatMP3:
		repaired, err = v.ensureMP3Tags(req)
	case FormatFLAC:
		repaired, err = v.ensureFLACTags(req)
	default:
		return result, nil
	}

	if err != nil {
		logger.Warnf(ctx, "Failed to check tags of %s: %v", filepath.Base(req.Path), err)

		return result, nil
	}

	if repaired {
		logger.Debugf(ctx, "Repaired tags of %s", filepath.Base(req.Path))

		if info, err = os.Stat(req.Path); err == nil {
			result.Size = info.Size()
		}
	}

	result.TagsRepaired = repaired

	return result, nil
}

func (v *TagVerifierImpl) ensureMP3Tags(req *VerifyRequest) (bool, error) {
	tag, err := id3v2.Open(req.Path, id3v2.Options{Parse: true})
	if err != nil {
		return false, err
	}

	defer tag.Close()

	var (
		meta         = req.Metadata
		missingText  = tag.Title() != meta.Title || tag.Artist() != meta.Artist || tag.Album() != meta.Album
		pictures     = tag.GetFrames(tag.CommonID("Attached picture"))
		missingCover = req.CoverPath != "" && len(pictures) == 0
	)

	if !missingText && !missingCover {
		return false, nil
	}

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if missingText {
		tag.SetTitle(meta.Title)
		tag.SetArtist(meta.Artist)
		tag.SetAlbum(meta.Album)

		if meta.Year != "" {
			tag.SetYear(meta.Year)
		}

		if meta.Genre != "" {
			tag.SetGenre(meta.Genre)
		}

		if meta.Publisher != "" {
			tag.AddTextFrame(tag.CommonID("Publisher"), tag.DefaultEncoding(), meta.Publisher)
		}

		if meta.Comment != "" {
			//nolint:exhaustruct // Description is intentionally empty.
			tag.AddCommentFrame(id3v2.CommentFrame{
				Encoding: id3v2.EncodingUTF8,
				Language: id3v2.EnglishISO6392Code,
				Text:     meta.Comment,
			})
		}
	}

	if missingCover {
		image, err := readCover(req.CoverPath)
		if err != nil {
			return false, err
		}

		//nolint:exhaustruct // Description is intentionally empty.
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    image.mimeType,
			PictureType: id3v2.PTFrontCover,
			Picture:     image.data,
		})
	}

	return true, tag.Save()
}

func (v *TagVerifierImpl) ensureFLACTags(req *VerifyRequest) (bool, error) {
	file, err := flac.ParseFile(filepath.Clean(req.Path))
	if err != nil {
		return false, err
	}

	var (
		comment      *flacvorbis.MetaDataBlockVorbisComment
		commentIndex = -1
		hasPicture   bool
	)

	for i, meta := range file.Meta {
		switch meta.Type {
		case flac.VorbisComment:
			if parsed, parseErr := flacvorbis.ParseFromMetaDataBlock(*meta); parseErr == nil {
				comment, commentIndex = parsed, i
			}
		case flac.Picture:
			hasPicture = true
		default:
		}
	}

	missingText := comment == nil || !hasVorbisValue(comment, flacvorbis.FIELD_TITLE, req.Metadata.Title)
	missingCover := req.CoverPath != "" && !hasPicture

	if !missingText && !missingCover {
		return false, nil
	}

	if missingText {
		if comment == nil {
			comment = flacvorbis.New()
		}

		if err = addVorbisTags(comment, req.Metadata); err != nil {
			return false, err
		}

		block := comment.Marshal()
		if commentIndex >= 0 {
			file.Meta[commentIndex] = &block
		} else {
			file.Meta = append(file.Meta, &block)
		}
	}

	if missingCover {
		image, err := readCover(req.CoverPath)
		if err != nil {
			return false, err
		}

		picture, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Cover (front)", image.data,
			image.mimeType)
		if err != nil {
			return false, err
		}

		block := picture.Marshal()
		file.Meta = append(file.Meta, &block)
	}

	return true, file.Save(req.Path)
}

func hasVorbisValue(comment *flacvorbis.MetaDataBlockVorbisComment, key, expected string) bool {
	values, err := comment.Get(key)
	if err != nil {
		return false
	}

	for _, value := range values {
		if value == expected {
			return true
		}
	}

	return expected == "" && len(values) == 0
}

func addVorbisTags(comment *flacvorbis.MetaDataBlockVorbisComment, meta ffmpeg.Metadata) error {
	tags := []struct {
		key   string
		value string
	}{
		{flacvorbis.FIELD_TITLE, meta.Title},
		{flacvorbis.FIELD_ARTIST, meta.Artist},
		{flacvorbis.FIELD_ALBUM, meta.Album},
		{flacvorbis.FIELD_DATE, meta.Date},
		{flacvorbis.FIELD_GENRE, meta.Genre},
		{flacvorbis.FIELD_ORGANIZATION, meta.Publisher},
		{"COMMENT", meta.Comment},
	}

	for _, tag := range tags {
		if tag.value == "" {
			continue
		}

		if err := comment.Add(tag.key, tag.value); err != nil {
			return err
		}
	}

	return nil
}

// coverImage is artwork loaded from disk.
type coverImage struct {
	data     []byte
	mimeType string
}

func readCover(path string) (*coverImage, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	return &coverImage{data: data, mimeType: mimeType}, nil
}
