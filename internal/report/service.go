package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/signintech/gopdf"
	"go.uber.org/zap"

	"heart-triage-agent/internal/triage"
)

var ErrNoFont = errors.New("no usable TTF font found")

// DefaultFontPaths are the common DejaVu locations on Debian and Alpine images.
var DefaultFontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

const disclaimer = "Educational demo only. Not a medical device; consult a licensed physician."

type TelegramClient interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendDocument(ctx context.Context, chatID int64, fileData []byte, fileName string) error
}

type Service struct {
	tgClient     TelegramClient
	doctorChatID int64
	fontPaths    []string
	logger       *zap.Logger
}

// NewService builds a report sender. Extra font paths are tried before the defaults.
func NewService(tg TelegramClient, doctorChatID int64, logger *zap.Logger, fontPaths ...string) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tgClient:     tg,
		doctorChatID: doctorChatID,
		fontPaths:    append(fontPaths, DefaultFontPaths...),
		logger:       logger,
	}
}

// NotifyTriage sends the PDF report, or a plain-text summary when no font is available.
func (s *Service) NotifyTriage(ctx context.Context, res *triage.Result) error {
	pdf, err := Render(res, s.fontPaths)
	if errors.Is(err, ErrNoFont) {
		s.logger.Warn("sending text report instead of PDF", zap.Error(err))
		return s.tgClient.SendMessage(ctx, s.doctorChatID, Summary(res))
	}
	if err != nil {
		return err
	}

	fileName := fmt.Sprintf("triage_%s.pdf", res.ID.String())
	if err := s.tgClient.SendDocument(ctx, s.doctorChatID, pdf, fileName); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	s.logger.Info("triage report sent", zap.String("run_id", res.ID.String()), zap.Int64("chat_id", s.doctorChatID))
	return nil
}

// Summary is the plain-text form of a triage result.
func Summary(res *triage.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Triage %s\n", res.ID)
	fmt.Fprintf(&b, "Date: %s\n", res.CreatedAt.Format("02.01.2006 15:04"))
	fmt.Fprintf(&b, "Symptoms: %s\n", res.Symptoms)
	fmt.Fprintf(&b, "Potential conditions: %s\n", joinConditions(res.Conditions))
	if keys := res.Findings.Keys(); len(keys) > 0 {
		fmt.Fprintf(&b, "Analyses: %s\n", strings.Join(keys, ", "))
	}
	fmt.Fprintf(&b, "Diagnosis: %s\n", res.Diagnosis)
	fmt.Fprintf(&b, "Treatment plan: %s\n", res.TreatmentPlan)
	b.WriteString(disclaimer)
	return b.String()
}

// Render lays the triage result out as a one-page A4 PDF.
func Render(res *triage.Result, fontPaths []string) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		}
	}
	if !fontLoaded {
		return nil, ErrNoFont
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Heart Triage Report")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Date: %s", res.CreatedAt.Format("02.01.2006 15:04")))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Run ID: %s", res.ID))
	pdf.Br(25)

	sections := []struct {
		title string
		body  string
	}{
		{"Symptoms:", res.Symptoms},
		{"Potential conditions:", joinConditions(res.Conditions)},
		{"Analyses performed:", strings.Join(res.Findings.Keys(), ", ")},
		{"Diagnosis:", res.Diagnosis},
		{"Treatment plan:", res.TreatmentPlan},
	}
	for _, sec := range sections {
		if sec.body == "" {
			continue
		}
		if err := pdf.SetFont("DejaVu", "", 14); err != nil {
			return nil, err
		}
		pdf.Cell(nil, sec.title)
		pdf.Br(15)

		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return nil, err
		}
		lines, err := pdf.SplitText(sec.body, 500)
		if err != nil {
			return nil, fmt.Errorf("split %q: %w", sec.title, err)
		}
		for _, l := range lines {
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
		pdf.Br(10)
	}

	// Footer
	pdf.SetY(800)
	if err := pdf.SetFont("DejaVu", "", 9); err != nil {
		return nil, err
	}
	pdf.Cell(nil, disclaimer)

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func joinConditions(conds []triage.Condition) string {
	names := make([]string, len(conds))
	for i, c := range conds {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
