package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ignite/campaign-insights/internal/contact"
)

// expectedColumns is the contact-log schema contract with the upstream
// loader. Every column must be present in the header; a missing column is
// a schema violation that aborts the run.
var expectedColumns = []string{
	"age", "job", "marital", "education", "default", "balance",
	"housing", "loan", "contact", "day", "month", "duration",
	"campaign", "pdays", "previous", "poutcome", "y",
}

// CSVLoader reads the raw contact-event table from a CSV export. Both
// comma and semicolon separated exports are accepted (the upstream system
// ships semicolon-separated files).
type CSVLoader struct {
	r          io.Reader
	sourceName string
}

func NewCSVLoader(r io.Reader, sourceName string) *CSVLoader {
	return &CSVLoader{r: r, sourceName: sourceName}
}

// Load parses the full CSV into raw events. Any malformed row (missing
// column, non-numeric value in a numeric column) is fatal: the run must
// abort rather than silently drop or coerce bad input.
func (l *CSVLoader) Load(ctx context.Context) ([]contact.RawContactEvent, error) {
	br := newBufferedPeeker(l.r)
	reader := csv.NewReader(br)
	reader.Comma = detectSeparator(br.peeked)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: read header: %w", l.sourceName, err)
	}

	idx, err := mapColumns(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.sourceName, err)
	}

	var events []contact.RawContactEvent
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", l.sourceName, line, err)
		}

		ev, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", l.sourceName, line, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// mapColumns resolves each expected column name to its header position.
// Extra columns are tolerated and ignored; absent ones are an error.
func mapColumns(header []string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ToLower(strings.Trim(strings.TrimSpace(h), `"`))] = i
	}
	idx := make(map[string]int, len(expectedColumns))
	for _, col := range expectedColumns {
		pos, ok := byName[col]
		if !ok {
			return nil, fmt.Errorf("schema violation: missing column %q in header %v", col, header)
		}
		idx[col] = pos
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (contact.RawContactEvent, error) {
	get := func(col string) (string, error) {
		pos := idx[col]
		if pos >= len(row) {
			return "", fmt.Errorf("schema violation: row has %d fields, column %q expects position %d", len(row), col, pos)
		}
		return strings.Trim(strings.TrimSpace(row[pos]), `"`), nil
	}
	getInt := func(col string) (int, error) {
		s, err := get(col)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("schema violation: column %q value %q is not an integer", col, s)
		}
		return v, nil
	}

	var ev contact.RawContactEvent
	var err error
	if ev.Age, err = getInt("age"); err != nil {
		return ev, err
	}
	if ev.Job, err = get("job"); err != nil {
		return ev, err
	}
	if ev.Marital, err = get("marital"); err != nil {
		return ev, err
	}
	if ev.Education, err = get("education"); err != nil {
		return ev, err
	}
	if ev.CreditFlag, err = get("default"); err != nil {
		return ev, err
	}
	if ev.Balance, err = getInt("balance"); err != nil {
		return ev, err
	}
	if ev.HousingLoan, err = get("housing"); err != nil {
		return ev, err
	}
	if ev.PersonalLoan, err = get("loan"); err != nil {
		return ev, err
	}
	if ev.Channel, err = get("contact"); err != nil {
		return ev, err
	}
	if ev.ContactDay, err = getInt("day"); err != nil {
		return ev, err
	}
	if ev.ContactMonth, err = get("month"); err != nil {
		return ev, err
	}
	if ev.DurationSec, err = getInt("duration"); err != nil {
		return ev, err
	}
	if ev.CampaignContacts, err = getInt("campaign"); err != nil {
		return ev, err
	}
	if ev.DaysSincePrior, err = getInt("pdays"); err != nil {
		return ev, err
	}
	if ev.PriorContacts, err = getInt("previous"); err != nil {
		return ev, err
	}
	if ev.PriorOutcome, err = get("poutcome"); err != nil {
		return ev, err
	}
	if ev.Subscribed, err = get("y"); err != nil {
		return ev, err
	}
	return ev, nil
}

// bufferedPeeker reads ahead far enough to sniff the separator and strip a
// UTF-8 BOM, then replays the bytes to the CSV reader.
type bufferedPeeker struct {
	r      io.Reader
	peeked []byte
	pos    int
}

func newBufferedPeeker(r io.Reader) *bufferedPeeker {
	buf := make([]byte, 512)
	n, _ := io.ReadFull(r, buf)
	peeked := buf[:n]
	if len(peeked) >= 3 && peeked[0] == 0xEF && peeked[1] == 0xBB && peeked[2] == 0xBF {
		peeked = peeked[3:]
	}
	return &bufferedPeeker{r: r, peeked: peeked}
}

func (b *bufferedPeeker) Read(p []byte) (int, error) {
	if b.pos < len(b.peeked) {
		n := copy(p, b.peeked[b.pos:])
		b.pos += n
		return n, nil
	}
	return b.r.Read(p)
}

// detectSeparator picks semicolon when the first line carries more
// semicolons than commas, comma otherwise.
func detectSeparator(head []byte) rune {
	line := string(head)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}
