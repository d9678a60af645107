package term

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"seedvault/internal/domain"
	"seedvault/internal/recovery"
)

// Prompter reads operator input line by line and renders recovery screens.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New returns a prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// RequestWordCount prompts until the operator picks a supported word count.
func (p *Prompter) RequestWordCount(ctx context.Context) (int, error) {
	counts := make([]string, len(recovery.WordCounts))
	for i, c := range recovery.WordCounts {
		counts[i] = strconv.Itoa(c)
	}
	fmt.Fprintln(p.out, titleStyle.Render("Number of words in your backup?"))
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprintf(p.out, "%s ", promptStyle.Render("("+strings.Join(counts, "/")+"):"))
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			if _, cerr := recovery.Classify(n); cerr == nil {
				return n, nil
			}
		}
		fmt.Fprintln(p.out, warnStyle.Render("Unsupported word count."))
	}
}

// RequestWord prompts for a single word, lowercased and trimmed.
func (p *Prompter) RequestWord(ctx context.Context, index, total int, isShare bool) (string, error) {
	kind := "seed"
	if isShare {
		kind = "share"
	}
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprintf(p.out, "%s ", promptStyle.Render(fmt.Sprintf("Type %s word %d of %d:", kind, index+1, total)))
		word, err := p.readLine()
		if err != nil {
			return "", err
		}
		if word != "" {
			return strings.ToLower(word), nil
		}
	}
}

// Report renders one classified outcome screen.
func (p *Prompter) Report(kind domain.ReportKind, info domain.ReportInfo) error {
	var text string
	style := warnStyle
	switch kind {
	case domain.ReportShareAlreadyAdded:
		text = "Share already entered, please enter a different share."
	case domain.ReportIdentifierMismatch:
		text = "You have entered a share from another Shamir Backup."
	case domain.ReportGroupThresholdReached:
		text = "Threshold of this group has been reached. Input share from different group."
	case domain.ReportInvalidWords:
		if info.IsShare {
			text = "You have entered an invalid recovery share."
		} else {
			text = "You have entered an invalid recovery seed."
		}
	case domain.ReportDryRunMatch:
		style = successStyle
		if info.IsShare {
			text = "The entered recovery shares are valid and match what is currently in the device."
		} else {
			text = "The entered recovery seed is valid and matches the one in the device."
		}
	case domain.ReportDryRunMismatch:
		if info.IsShare {
			text = "The entered recovery shares are valid but do not match what is currently in the device."
		} else {
			text = "The entered recovery seed is valid but does not match the one in the device."
		}
	case domain.ReportDryRunTypeMismatch:
		text = "Seed in the device was created using another backup mechanism."
	default:
		text = "Unknown recovery outcome."
	}
	_, err := fmt.Fprintln(p.out, style.Render(text))
	return err
}

// Confirm asks a yes/no question; anything but yes declines.
func (p *Prompter) Confirm(ctx context.Context, title, question, description string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintln(p.out, titleStyle.Render(title))
	if description != "" {
		fmt.Fprintln(p.out, subtleStyle.Render(description))
	}
	fmt.Fprintf(p.out, "%s ", promptStyle.Render(question+" [y/N]:"))
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// ContinueRecovery shows the homescreen dialog; typing "abort" declines.
func (p *Prompter) ContinueRecovery(ctx context.Context, label, text, subtext string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintln(p.out, titleStyle.Render(text))
	if subtext != "" {
		fmt.Fprintln(p.out, subtleStyle.Render(subtext))
	}
	fmt.Fprintf(p.out, "%s ", promptStyle.Render(fmt.Sprintf("Press Enter to %s, or type 'abort':", strings.ToLower(label))))
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "abort", "a":
		return false, nil
	default:
		return true, nil
	}
}

// ShowProgress lists each touched group's share tally.
func (p *Prompter) ShowProgress(prog domain.Progress) error {
	indices := make([]int, 0, len(prog.Groups))
	for gi := range prog.Groups {
		indices = append(indices, gi)
	}
	sort.Ints(indices)

	satisfied := 0
	for _, gi := range indices {
		gp := prog.Groups[gi]
		if gp.Accepted >= gp.MemberThreshold {
			satisfied++
		}
		fmt.Fprintln(p.out, subtleStyle.Render(
			fmt.Sprintf("Group %d: %d of %d shares entered.", gi+1, gp.Accepted, gp.MemberThreshold)))
	}
	if prog.GroupThreshold > satisfied {
		fmt.Fprintln(p.out, titleStyle.Render(
			fmt.Sprintf("%d more group(s) needed.", prog.GroupThreshold-satisfied)))
	}
	return nil
}

// ShowSuccess renders a final success message.
func (p *Prompter) ShowSuccess(message string) error {
	_, err := fmt.Fprintln(p.out, successStyle.Render(message))
	return err
}

// Compile-time assertion that Prompter implements domain.RecoveryUI.
var _ domain.RecoveryUI = (*Prompter)(nil)
