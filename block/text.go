package block

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/planar/alloc"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/internal/pool"
)

// floatDigits is the number of significant digits WriteTo prints for floats.
const floatDigits = 15

var (
	_ io.ReaderFrom = (*Block[float64, alloc.Standard])(nil)
	_ io.WriterTo   = (*Block[float64, alloc.Standard])(nil)
)

// Parse builds a block from its text form.
func Parse[T Element, A alloc.Policy](text string, opts ...Option) (*Block[T, A], error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	b := &Block[T, A]{cfg: cfg}
	if _, err := b.ReadFrom(strings.NewReader(text)); err != nil {
		return nil, err
	}

	return b, nil
}

// ReadFrom replaces the block's contents with a block parsed from r.
//
// The first non-blank line is the "<dim0>,<rows>" header, followed by rows
// lines of dim0 values separated by commas and/or whitespace. Blank lines are
// ignored. On error the block is left unchanged.
//
// Returns errs.ErrInvalidFormat for malformed input.
func (b *Block[T, A]) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}
	br := bufio.NewReader(cr)

	header, err := nextLine(br)
	if err != nil {
		return cr.n, fmt.Errorf("%w: missing header: %w", errs.ErrInvalidFormat, err)
	}

	cols, rows, err := parseHeader(header)
	if err != nil {
		return cr.n, err
	}

	tmp, err := newBlock[T, A](cols, rows, b.Config())
	if err != nil {
		return cr.n, err
	}

	parse := elementParser[T]()
	for j := range rows {
		line, err := nextLine(br)
		if err != nil {
			tmp.Release()
			return cr.n, fmt.Errorf("%w: expected %d rows, got %d: %w", errs.ErrInvalidFormat, rows, j, err)
		}

		fields := splitFields(line)
		if len(fields) != cols {
			tmp.Release()
			return cr.n, fmt.Errorf("%w: row %d has %d values, expected %d", errs.ErrInvalidFormat, j, len(fields), cols)
		}

		row := tmp.Row(j)
		for i, f := range fields {
			v, err := parse(f)
			if err != nil {
				tmp.Release()
				return cr.n, fmt.Errorf("%w: row %d column %d: %w", errs.ErrInvalidFormat, j, i, err)
			}
			row[i] = v
		}
	}

	if extra, err := nextLine(br); err == nil {
		tmp.Release()
		return cr.n, fmt.Errorf("%w: unexpected trailing data %q", errs.ErrInvalidFormat, extra)
	}

	b.Assign(tmp)

	return cr.n, nil
}

// WriteTo writes the text form of the block to w.
//
// Returns errs.ErrCompressed if the block is compressed. An empty block writes nothing.
func (b *Block[T, A]) WriteTo(w io.Writer) (int64, error) {
	if b.state == Compressed {
		return 0, errs.ErrCompressed
	}
	if b.data == nil {
		return 0, nil
	}

	buf := pool.GetTextBuffer()
	defer pool.PutTextBuffer(buf)

	b.appendText(buf)

	return buf.WriteTo(w)
}

// String returns the text form of a raw block, or a short description of a
// compressed one.
func (b *Block[T, A]) String() string {
	if b.state == Compressed {
		return fmt.Sprintf("<%s block %dx%d, %d compressed bytes>", b.codecType, b.dim0, b.rows, len(b.data))
	}

	buf := pool.GetTextBuffer()
	defer pool.PutTextBuffer(buf)

	b.appendText(buf)

	return string(buf.B)
}

func (b *Block[T, A]) appendText(buf *pool.ByteBuffer) {
	format := elementFormatter[T]()

	for j := range b.rows {
		if j > 0 {
			buf.B = append(buf.B, '\n')
		}
		for i, v := range b.Row(j) {
			if i > 0 {
				buf.B = append(buf.B, ' ')
			}
			buf.B = format(buf.B, v)
		}
	}
}

func parseHeader(line string) (int, int, error) {
	first, second, ok := strings.Cut(line, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: header %q is not <cols>,<rows>", errs.ErrInvalidFormat, line)
	}

	cols, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: header column count: %w", errs.ErrInvalidFormat, err)
	}

	rows, err := strconv.Atoi(strings.TrimSpace(second))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: header row count: %w", errs.ErrInvalidFormat, err)
	}

	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("%w: header dimensions %dx%d", errs.ErrInvalidFormat, cols, rows)
	}

	return cols, rows, nil
}

// nextLine returns the next non-blank line with surrounding whitespace removed.
func nextLine(br *bufio.Reader) (string, error) {
	for {
		line, err := br.ReadString('\n')
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", io.ErrUnexpectedEOF
			}

			return "", err
		}
	}
}

func splitFields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r'
	})
}

func elementParser[T Element]() func(string) (T, error) {
	kind := KindOf[T]()
	bits := kind.Size() * 8

	switch {
	case kind.IsFloat():
		return func(s string) (T, error) {
			v, err := strconv.ParseFloat(s, bits)
			return T(v), err
		}
	case kind.IsSigned():
		return func(s string) (T, error) {
			v, err := strconv.ParseInt(s, 10, bits)
			return T(v), err
		}
	default:
		return func(s string) (T, error) {
			v, err := strconv.ParseUint(s, 10, bits)
			return T(v), err
		}
	}
}

func elementFormatter[T Element]() func([]byte, T) []byte {
	kind := KindOf[T]()

	switch {
	case kind.IsFloat():
		return func(dst []byte, v T) []byte {
			return strconv.AppendFloat(dst, float64(v), 'g', floatDigits, 64)
		}
	case kind.IsSigned():
		return func(dst []byte, v T) []byte {
			return strconv.AppendInt(dst, int64(v), 10)
		}
	default:
		return func(dst []byte, v T) []byte {
			return strconv.AppendUint(dst, uint64(v), 10)
		}
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)

	return n, err
}
