package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"

	"github.com/strichware/bardec/internal/binarize"
	"github.com/strichware/bardec/internal/common"
	"github.com/strichware/bardec/internal/pixels"
	"github.com/strichware/bardec/internal/sampler"
	"github.com/strichware/bardec/internal/transform"
	"github.com/strichware/bardec/internal/transition"
)

// searchState is shared across the whole search for one request: the trace
// collector and the decoder evaluation counter, which the budget is charged
// against atomically so parallel workers share one allowance.
type searchState struct {
	trace    *trace
	attempts atomic.Int64
	budget   int64
}

// DecodeBytes decodes a barcode from raw image bytes (PNG, JPEG, GIF or BMP).
func (p *Pipeline) DecodeBytes(ctx context.Context, data []byte) Result {
	timer := common.NewNamedTimer("decode")
	img, err := pixels.Decode(data)
	if err != nil {
		slog.Debug("image decode failed", "error", err, "bytes", len(data))
		res := failure(ErrImageDecode, 0, nil)
		res.DurationNs = timer.Stop().Nanoseconds()
		return res
	}
	return p.decode(ctx, img, timer)
}

// DecodeImage decodes a barcode from an already-decoded image.
func (p *Pipeline) DecodeImage(ctx context.Context, img image.Image) Result {
	return p.decode(ctx, img, common.NewNamedTimer("decode"))
}

func (p *Pipeline) decode(ctx context.Context, img image.Image, timer *common.Timer) Result {
	st := &searchState{
		trace:  newTrace(p.cfg.TraceLimit),
		budget: int64(p.cfg.Budget),
	}

	finish := func(res Result) Result {
		res.Attempts = int(st.attempts.Load())
		res.Trace = st.trace.snapshot()
		res.DurationNs = timer.Stop().Nanoseconds()
		slog.Debug("decode finished",
			"success", res.Success,
			"symbology", res.Symbology,
			"attempts", res.Attempts,
			"duration", timer.Duration(),
		)
		return res
	}

	// 2-D path first: a QR hit makes the whole 1-D search unnecessary.
	if p.matrix != nil {
		if payload, ok := p.matrix.DecodeMatrix(img); ok {
			return finish(Result{Success: true, Payload: payload, Symbology: "qr"})
		}
		st.trace.add("matrix/qr", "no 2-d symbol found")
	}

	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	transforms := transform.Catalog()
	var (
		res Result
		ok  bool
		err error
	)
	if p.cfg.Workers > 1 {
		res, ok, err = p.searchParallel(ctx, img, transforms, st)
	} else {
		res, ok, err = p.searchSequential(ctx, img, transforms, st)
	}
	if ok {
		res.Success = true
		return finish(res)
	}
	if err != nil {
		st.trace.add("search", err.Error())
		return finish(failure(ErrBudgetExceeded, 0, nil))
	}
	return finish(failure(ErrNoPattern, 0, nil))
}

func (p *Pipeline) searchSequential(ctx context.Context, img image.Image, transforms []transform.Transform, st *searchState) (Result, bool, error) {
	for _, tf := range transforms {
		res, ok, err := p.searchTransform(ctx, img, tf, st)
		if ok || err != nil {
			return res, ok, err
		}
	}
	return Result{}, false, nil
}

// searchTransform applies one transform and sweeps its scan strategies in
// increasing cost order, stopping at the first checksum-valid decode.
func (p *Pipeline) searchTransform(ctx context.Context, img image.Image, tf transform.Transform, st *searchState) (Result, bool, error) {
	buf := pixels.FromImage(tf.Apply(img))
	defer buf.Release()

	scratch := make([]uint8, buf.Width)
	var (
		found   Result
		okFound bool
		stop    error
	)
	for _, strat := range sampler.Strategies() {
		sampler.Sample(buf, tf.Name, strat, func(line sampler.Line) bool {
			if err := ctx.Err(); err != nil {
				stop = err
				return false
			}
			res, ok, err := p.searchLine(line, strat, st, scratch)
			if err != nil {
				stop = err
				return false
			}
			if ok {
				found, okFound = res, true
				return false
			}
			return true
		})
		if okFound || stop != nil {
			break
		}
	}
	return found, okFound, stop
}

// searchLine binarizes one scan line and runs the decoder chain over its
// normalized run sequence. Fallback threshold methods are tried only while the
// transition count stays outside the plausible band; once a method yields a
// usable sequence, its decode outcome is final for this line.
func (p *Pipeline) searchLine(line sampler.Line, strat sampler.Strategy, st *searchState, scratch []uint8) (Result, bool, error) {
	for _, method := range binarize.Methods() {
		threshold := binarize.Threshold(line.Pixels, method)
		bits := binarize.Binarize(line.Pixels, threshold, scratch)

		transitions, usable := transition.Extract(bits)
		name := fmt.Sprintf("%s/%s/row%d/%s", line.Transform, strat.Name, line.Row, method)
		if !usable {
			st.trace.add(name, fmt.Sprintf(
				"transition count %d outside [%d,%d]",
				len(transitions), transition.MinTransitions, transition.MaxTransitions,
			))
			continue
		}

		runs := transition.Normalize(transition.RunsFromLine(bits, transitions))
		for _, dec := range p.decoders {
			if st.attempts.Add(1) > st.budget {
				return Result{}, false, ErrBudgetExceeded
			}
			cand, ok := dec.Decode(runs)
			if !ok {
				continue
			}
			if !cand.ChecksumOK {
				st.trace.add(name+"/"+dec.Name(), "checksum mismatch")
				continue
			}
			return Result{Payload: cand.Payload, Symbology: cand.Symbology}, true, nil
		}
		return Result{}, false, nil
	}
	return Result{}, false, nil
}
