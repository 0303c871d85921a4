package replay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-doodle/internal/core"
)

// ErrMalformed is wrapped by every decoding failure.
var ErrMalformed = errors.New("replay: malformed input stream")

// Recordings are mostly idle ticks, so frames are stored as runs:
// "mask:count" pairs in hex and decimal, comma separated. An empty
// string is an empty recording.
//
//	0:120,4:1,0:37,2:1

func encodeMasks(masks []uint16) string {
	var sb strings.Builder
	for i := 0; i < len(masks); {
		j := i + 1
		for j < len(masks) && masks[j] == masks[i] {
			j++
		}
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(masks[i]), 16))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(j - i))
		i = j
	}
	return sb.String()
}

// Decode expands an encoded recording into input frames.
func Decode(s string) ([]core.InputFrame, error) {
	if s == "" {
		return nil, nil
	}

	var frames []core.InputFrame
	for i, run := range strings.Split(s, ",") {
		maskStr, countStr, ok := strings.Cut(run, ":")
		if !ok {
			return nil, fmt.Errorf("%w: run %d %q has no count", ErrMalformed, i, run)
		}
		mask, err := strconv.ParseUint(maskStr, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: run %d mask: %v", ErrMalformed, i, err)
		}
		count, err := strconv.Atoi(countStr)
		if err != nil || count <= 0 {
			return nil, fmt.Errorf("%w: run %d count %q", ErrMalformed, i, countStr)
		}

		frame := core.FrameFromMask(uint16(mask))
		for range count {
			frames = append(frames, frame)
		}
	}
	return frames, nil
}
