package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"thoughtfolio-backend/internal/capture/domain"
	capturedto "thoughtfolio-backend/internal/capture/dto"
	"thoughtfolio-backend/internal/capture/repository"
	gemdomain "thoughtfolio-backend/internal/gem/domain"
	gemdto "thoughtfolio-backend/internal/gem/dto"
	"thoughtfolio-backend/pkg/ai"
	"thoughtfolio-backend/pkg/article"
)

const (
	MaxImages     = 4
	MaxImageBytes = 5 << 20

	DefaultDailyLimit = 10
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ContextLister provides the user's context slugs offered to the model
type ContextLister interface {
	ListContexts(userID string) ([]gemdto.ContextResponse, error)
}

type ArticleFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*article.Article, error)
}

type CaptureUsecase interface {
	Analyze(ctx context.Context, userID string, req *capturedto.AnalyzeRequest) (*capturedto.AnalyzeResponse, error)
	Usage(userID string) (*capturedto.UsageResponse, error)
}

type Config struct {
	DailyLimit int
	Timeout    time.Duration
}

type captureUsecase struct {
	assistant ai.Service
	usageRepo repository.UsageRepository
	contexts  ContextLister
	fetcher   ArticleFetcher
	cfg       Config
	now       func() time.Time
}

// NewCaptureUsecase accepts a nil assistant, in which case every request uses the splitter
func NewCaptureUsecase(assistant ai.Service, usageRepo repository.UsageRepository, contexts ContextLister, fetcher ArticleFetcher, cfg Config) CaptureUsecase {
	if cfg.DailyLimit <= 0 {
		cfg.DailyLimit = DefaultDailyLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &captureUsecase{
		assistant: assistant,
		usageRepo: usageRepo,
		contexts:  contexts,
		fetcher:   fetcher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (u *captureUsecase) today() string {
	return u.now().UTC().Format("2006-01-02")
}

// decodeImage validates one image and returns it without any data URL prefix
func decodeImage(in capturedto.ImageInput) (ai.Image, error) {
	data := strings.TrimSpace(in.Data)
	mimeType := strings.ToLower(strings.TrimSpace(in.MimeType))
	if strings.HasPrefix(data, "data:") {
		comma := strings.Index(data, ",")
		if comma < 0 || !strings.Contains(data[:comma], ";base64") {
			return ai.Image{}, domain.ErrInvalidImage
		}
		if mimeType == "" {
			mimeType = strings.TrimSuffix(strings.TrimPrefix(data[:comma], "data:"), ";base64")
		}
		data = data[comma+1:]
	}
	if data == "" {
		return ai.Image{}, domain.ErrInvalidImage
	}
	if base64.StdEncoding.DecodedLen(len(data)) > MaxImageBytes+3 {
		return ai.Image{}, domain.ErrImageTooLarge
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		if raw, err = base64.RawStdEncoding.DecodeString(data); err != nil {
			return ai.Image{}, domain.ErrInvalidImage
		}
	}
	if len(raw) > MaxImageBytes {
		return ai.Image{}, domain.ErrImageTooLarge
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(raw)
	}
	if !allowedImageTypes[mimeType] {
		return ai.Image{}, domain.ErrInvalidImage
	}
	return ai.Image{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(raw)}, nil
}

func inputType(hasText, hasImages, hasURL bool) string {
	n := 0
	kind := domain.InputText
	if hasText {
		n++
	}
	if hasImages {
		n++
		kind = domain.InputImage
	}
	if hasURL {
		n++
		kind = domain.InputURL
	}
	if n > 1 {
		return domain.InputMixed
	}
	return kind
}

func (u *captureUsecase) Analyze(ctx context.Context, userID string, req *capturedto.AnalyzeRequest) (*capturedto.AnalyzeResponse, error) {
	if len(req.Images) > MaxImages {
		return nil, domain.ErrTooManyImages
	}
	images := make([]ai.Image, 0, len(req.Images))
	for _, in := range req.Images {
		img, err := decodeImage(in)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	content := strings.TrimSpace(req.Content)
	rawURL := strings.TrimSpace(req.URL)
	if content == "" && len(images) == 0 && rawURL == "" {
		return nil, domain.ErrNothingToAnalyze
	}

	start := u.now()
	resp := &capturedto.AnalyzeResponse{}
	kind := inputType(content != "", len(images) > 0, rawURL != "")

	text := content
	if rawURL != "" {
		page, err := u.fetcher.Fetch(ctx, rawURL)
		switch {
		case err == nil && page.Text != "":
			resp.SourceTitle = page.Title
			resp.SourceURL = page.URL
			if text != "" {
				text += "\n\n"
			}
			text += page.Text
		case content == "" && len(images) == 0:
			log.Printf("[CaptureUsecase] fetch failed for user %s: %v", userID, err)
			return nil, domain.ErrFetchFailed
		default:
			log.Printf("[CaptureUsecase] ignoring URL for user %s: %v", userID, err)
		}
	}

	count := 0
	var aiErr error
	if u.assistant != nil {
		var err error
		count, err = u.usageRepo.Consume(userID, u.today(), estimateTokens(text, len(images)))
		if err != nil {
			return nil, err
		}
		if count > u.cfg.DailyLimit {
			return nil, domain.ErrDailyLimit
		}

		aiCtx, cancel := context.WithTimeout(ctx, u.cfg.Timeout)
		resp.Items, aiErr = u.assistant.ExtractCapture(aiCtx, ai.CaptureInput{Content: text, Images: images}, u.contextSlugs(userID))
		cancel()
		if aiErr != nil {
			log.Printf("[CaptureUsecase] AI extraction failed for user %s, using splitter: %v", userID, aiErr)
		}
	} else {
		aiErr = errors.New("AI service not configured")
	}

	if aiErr != nil {
		resp.FallbackUsed = true
		resp.Items = SplitContent(text)
	}
	if resp.Items == nil {
		resp.Items = []ai.CaptureItem{}
	}
	for i := range resp.Items {
		if resp.Items[i].SourceURL == "" && resp.SourceURL != "" {
			resp.Items[i].SourceURL = resp.SourceURL
			if resp.Items[i].Source == "" {
				resp.Items[i].Source = resp.SourceTitle
			}
		}
	}

	resp.ProcessingTimeMs = u.now().Sub(start).Milliseconds()
	resp.RemainingToday = u.cfg.DailyLimit - count
	if resp.RemainingToday < 0 {
		resp.RemainingToday = 0
	}

	entry := &domain.AIExtraction{
		UserID:       userID,
		InputType:    kind,
		ImageCount:   len(images),
		ItemCount:    len(resp.Items),
		ProcessingMs: resp.ProcessingTimeMs,
		FallbackUsed: resp.FallbackUsed,
	}
	if aiErr != nil {
		entry.Error = aiErr.Error()
	}
	if err := u.usageRepo.LogExtraction(entry); err != nil {
		log.Printf("[CaptureUsecase] failed to log extraction: %v", err)
	}
	return resp, nil
}

func (u *captureUsecase) contextSlugs(userID string) []string {
	contexts, err := u.contexts.ListContexts(userID)
	if err != nil || len(contexts) == 0 {
		return []string{gemdomain.OtherContextSlug}
	}
	slugs := make([]string, 0, len(contexts))
	for _, c := range contexts {
		slugs = append(slugs, c.Slug)
	}
	return slugs
}

// estimateTokens uses the usual four characters per token plus a flat cost per image
func estimateTokens(text string, images int) int {
	return len(text)/4 + images*258
}

func (u *captureUsecase) Usage(userID string) (*capturedto.UsageResponse, error) {
	date := u.today()
	usage, err := u.usageRepo.Get(userID, date)
	if err != nil {
		return nil, err
	}
	used := 0
	if usage != nil {
		used = usage.ExtractionCount
	}
	remaining := u.cfg.DailyLimit - used
	if remaining < 0 {
		remaining = 0
	}
	return &capturedto.UsageResponse{Date: date, Used: used, Limit: u.cfg.DailyLimit, Remaining: remaining}, nil
}
