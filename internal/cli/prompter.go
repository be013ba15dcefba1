package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/ndhuy/tienoi/internal/model"
	"github.com/schollz/progressbar/v3"
)

// maxSuggestionDistance bounds how far a typed category name may be from
// a real one before "did you mean" gives up.
const maxSuggestionDistance = 3

// Prompter implements the interactive confirmation surface for parsed
// transactions.
type Prompter struct {
	reader   *bufio.Reader
	writer   io.Writer
	progress *progressbar.ProgressBar
}

// NewPrompter creates a prompter on the given reader and writer, defaulting
// to stdin/stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// BeginBatch shows a progress bar across a multi-transaction confirmation.
func (p *Prompter) BeginBatch(total int) {
	if total < 2 {
		return
	}
	p.progress = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionSetDescription("Xác nhận giao dịch"),
		progressbar.OptionShowCount(),
	)
}

// EndBatch tears the progress bar down.
func (p *Prompter) EndBatch() {
	if p.progress != nil {
		_ = p.progress.Finish()
		fmt.Fprintln(p.writer)
		p.progress = nil
	}
}

// ConfirmTransaction shows one parsed transaction and asks the user to
// accept, adjust, or skip it. A nil transaction with nil error means skip.
func (p *Prompter) ConfirmTransaction(ctx context.Context, parsed model.ParsedTransaction, categories []model.Category) (*model.Transaction, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if _, err := fmt.Fprintln(p.writer, RenderBox("Giao dịch", p.formatParsed(parsed))); err != nil {
		return nil, fmt.Errorf("failed to write transaction box: %w", err)
	}

	txn := &model.Transaction{
		Date:         parsed.Date,
		Type:         parsed.Type,
		Amount:       parsed.Amount,
		CategoryID:   parsed.CategoryID,
		CategoryName: parsed.CategoryName,
		Note:         parsed.Note,
		Status:       model.StatusUserConfirmed,
		Source:       parsed.Source,
		Confidence:   parsed.Confidence,
	}

	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt("[Y] lưu  [C] đổi danh mục  [N] sửa ghi chú  [S] bỏ qua: ")); err != nil {
			return nil, err
		}

		answer, err := p.readLine()
		if err != nil {
			return nil, err
		}

		switch strings.ToLower(answer) {
		case "", "y":
			p.advance()
			fmt.Fprintln(p.writer, FormatSuccess("Đã lưu"))
			return txn, nil
		case "s":
			p.advance()
			fmt.Fprintln(p.writer, SubtleStyle.Render("Bỏ qua"))
			return nil, nil
		case "c":
			if changed := p.editCategory(txn, categories); changed {
				txn.Status = model.StatusUserModified
			}
		case "n":
			fmt.Fprint(p.writer, "Ghi chú mới: ")
			note, err := p.readLine()
			if err != nil {
				return nil, err
			}
			txn.Note = note
			txn.Status = model.StatusUserModified
		default:
			fmt.Fprintln(p.writer, FormatWarning("Không hiểu, thử lại"))
		}
	}
}

// editCategory lets the user retype the category, with a levenshtein
// "did you mean" pass over the categories of the matching type.
func (p *Prompter) editCategory(txn *model.Transaction, categories []model.Category) bool {
	fmt.Fprint(p.writer, "Danh mục mới: ")
	name, err := p.readLine()
	if err != nil || strings.TrimSpace(name) == "" {
		return false
	}
	name = strings.TrimSpace(name)

	if cat := findCategory(name, txn.Type, categories); cat != nil {
		txn.CategoryID = cat.ID
		txn.CategoryName = cat.Name
		return true
	}

	if cat := nearestCategory(name, txn.Type, categories); cat != nil {
		fmt.Fprintf(p.writer, "Ý bạn là %s? [y/n]: ", BoldStyle.Render(cat.Name))
		answer, err := p.readLine()
		if err == nil && strings.EqualFold(strings.TrimSpace(answer), "y") {
			txn.CategoryID = cat.ID
			txn.CategoryName = cat.Name
			return true
		}
		return false
	}

	fmt.Fprintln(p.writer, FormatWarning("Không tìm thấy danh mục phù hợp"))
	return false
}

func (p *Prompter) formatParsed(parsed model.ParsedTransaction) string {
	direction := "Chi"
	if parsed.Type == model.CategoryTypeIncome {
		direction = "Thu"
	}

	lines := []string{
		fmt.Sprintf("%s %s", direction, BoldStyle.Render(FormatVND(parsed.Amount))),
		fmt.Sprintf("Danh mục: %s", parsed.CategoryName),
		fmt.Sprintf("Ngày: %s", parsed.Date.Format("02/01/2006")),
	}
	if parsed.Note != "" {
		lines = append(lines, fmt.Sprintf("Ghi chú: %s", parsed.Note))
	}
	lines = append(lines, SubtleStyle.Render(
		fmt.Sprintf("độ tin cậy %.0f%% (%s)", parsed.Confidence*100, parsed.Source)))
	return strings.Join(lines, "\n")
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) advance() {
	if p.progress != nil {
		_ = p.progress.Add(1)
	}
}

// findCategory returns the exact (case-insensitive) name match of the
// required type.
func findCategory(name string, txType model.CategoryType, categories []model.Category) *model.Category {
	for i := range categories {
		if categories[i].Type == txType && strings.EqualFold(categories[i].Name, name) {
			return &categories[i]
		}
	}
	return nil
}

// nearestCategory returns the closest name of the required type within the
// suggestion distance, or nil when nothing is close enough.
func nearestCategory(name string, txType model.CategoryType, categories []model.Category) *model.Category {
	lower := strings.ToLower(name)

	var best *model.Category
	bestDistance := maxSuggestionDistance + 1
	for i := range categories {
		if categories[i].Type != txType {
			continue
		}
		distance := levenshtein.ComputeDistance(lower, strings.ToLower(categories[i].Name))
		if distance < bestDistance {
			best = &categories[i]
			bestDistance = distance
		}
	}
	return best
}
