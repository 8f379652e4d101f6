package formats

import (
	"math"
	"strings"

	"go.uber.org/zap"
)

// corner is one resolved v/vt/vn triplet of a face record.
type corner struct {
	v, t, n int32
}

// atoi parses an optional sign and leading decimal digits, returning 0
// when none are present. Values beyond int32 saturate.
func atoi(s string) int32 {
	s = strings.TrimLeft(s, " \t")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	var n int64
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int64(s[i]-'0')
		if n > math.MaxInt32 {
			n = math.MaxInt32
		}
	}
	if neg {
		return int32(-n)
	}
	return int32(n)
}

// resolveIndex converts a 1-based sub-field to 0-based. An absent field
// or one that parses to zero keeps the sentinel 1.
func resolveIndex(field string) int32 {
	if n := atoi(field); n != 0 {
		return n - 1
	}
	return 1
}

// parseCorner splits "v", "v/t", "v//n" or "v/t/n".
func parseCorner(token string) corner {
	c := corner{v: 1, t: 1, n: 1}
	fields := strings.SplitN(token, "/", 3)
	c.v = resolveIndex(fields[0])
	if len(fields) > 1 && fields[1] != "" {
		c.t = resolveIndex(fields[1])
	}
	if len(fields) > 2 {
		c.n = resolveIndex(fields[2])
	}
	return c
}

// resolveFace parses the corners of one "f" record and appends the
// resulting triangle indices. Quads are fan-triangulated; records with
// more than four corners are dropped with a warning.
func (a *shapeAccumulator) resolveFace(rest string, log *zap.Logger) error {
	tokens := strings.Fields(rest)

	if !strings.Contains(rest, "/") {
		// vertex indices only
		if err := a.checkRoom("vertex indices", len(a.vertexIndices), len(tokens)); err != nil {
			return err
		}
		for _, tok := range tokens {
			a.vertexIndices = append(a.vertexIndices, resolveIndex(tok))
		}
		return nil
	}

	var corners [4]corner
	n := 0
	for _, tok := range tokens {
		if n < len(corners) {
			corners[n] = parseCorner(tok)
		}
		n++

		switch {
		case len(tokens) == 3 && n == 3:
			n = 0
			if err := a.emit(corners[0], corners[1], corners[2]); err != nil {
				return err
			}
		case len(tokens) == 4 && n == 4:
			n = 0
			if err := a.emit(corners[0], corners[1], corners[2]); err != nil {
				return err
			}
			if err := a.emit(corners[0], corners[2], corners[3]); err != nil {
				return err
			}
		case n > 4:
			log.Warn("face has more than 4 corners, not supported",
				zap.Int("corners", len(tokens)))
			n = 0
		}
	}
	return nil
}

// emit appends one triangle to every active index stream.
func (a *shapeAccumulator) emit(c ...corner) error {
	if err := a.checkRoom("vertex indices", len(a.vertexIndices), len(c)); err != nil {
		return err
	}
	for _, k := range c {
		a.vertexIndices = append(a.vertexIndices, k.v)
		a.normalIndices = append(a.normalIndices, k.n)
		if a.withTexcoords {
			a.texcoordIndices = append(a.texcoordIndices, k.t)
		}
	}
	return nil
}
