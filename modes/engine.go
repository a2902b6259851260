package modes

import (
	"fmt"
	"time"

	"github.com/armon/go-metrics"
	"github.com/hashicorp/go-hclog"

	"github.com/vomar3/blockcipher/bitblock"
	"github.com/vomar3/blockcipher/padding"
)

// MetricSink receives per-operation timings and counters. Both
// *metrics.Metrics and any metrics.MetricSink satisfy it.
type MetricSink interface {
	IncrCounterWithLabels(key []string, val float32, labels []metrics.Label)
	AddSampleWithLabels(key []string, val float32, labels []metrics.Label)
}

// Engine runs cipher contexts. It holds no per-operation state and is safe
// for concurrent use with distinct contexts.
type Engine struct {
	logger      hclog.Logger
	sink        MetricSink
	counterBits int
}

type Option func(*Engine)

func WithLogger(logger hclog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCounterBits bounds the CTR counter to the last n bits of the nonce.
// Zero, or any value not below the block width, counts over the whole block.
func WithCounterBits(n int) Option {
	return func(e *Engine) {
		e.counterBits = max(n, 0)
	}
}

func WithMetrics(sink MetricSink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("blockcipher")
	return e
}

func (e *Engine) CounterBits() int {
	return e.counterBits
}

var defaultEngine = NewEngine()

// Encrypt runs ctx on an engine with default settings.
func Encrypt(ctx *CipherContext) ([]byte, error) {
	return defaultEngine.Encrypt(ctx)
}

// Decrypt runs ctx on an engine with default settings.
func Decrypt(ctx *CipherContext) ([]byte, error) {
	return defaultEngine.Decrypt(ctx)
}

// Encrypt encrypts ctx.Plaintext, stores the result in ctx.Ciphertext and
// returns it.
func (e *Engine) Encrypt(ctx *CipherContext) ([]byte, error) {
	return e.run(ctx, encrypt)
}

// Decrypt decrypts ctx.Ciphertext, stores the result in ctx.Plaintext and
// returns it.
func (e *Engine) Decrypt(ctx *CipherContext) ([]byte, error) {
	return e.run(ctx, decrypt)
}

func (e *Engine) run(ctx *CipherContext, op direction) (out []byte, err error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	id := ctx.Identifier
	defer e.measure(op, id, time.Now(), &err)

	if verr := validate(ctx, op); verr != nil {
		err = newValidationError(op, id, verr)
		e.logger.Debug("rejected context", "op", op.String(), "cipher", id.String(), "error", err)
		return nil, err
	}

	in := ctx.Plaintext
	if op == decrypt {
		in = ctx.Ciphertext
	}
	e.logger.Trace(op.String(), "cipher", id.String(), "bytes", len(in))

	block, err := newBlockCipher(id.Algorithm, ctx.Key)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", id, op, err)
	}

	// The chaining value is worked on in a copy and committed only on
	// success.
	var reg bitblock.Block
	switch id.Mode {
	case CBC, CFB, CFB1, CFB8, OFB:
		reg = bitblock.Block(ctx.IV).Clone()
	case CTR:
		reg = bitblock.Block(ctx.Nonce).Clone()
	}

	bs := block.BlockSize()
	switch id.Mode {
	case ECB, CBC:
		if op == encrypt {
			padded, err := padding.Pad(in, bs)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", id, op, err)
			}
			if id.Mode == ECB {
				out = ecbEncrypt(block, padded)
			} else {
				out = cbcEncrypt(block, reg, padded)
			}
			break
		}

		var raw []byte
		if id.Mode == ECB {
			raw = ecbDecrypt(block, in)
		} else {
			raw = cbcDecrypt(block, reg, in)
		}
		if out, err = padding.Unpad(raw, bs); err != nil {
			e.logger.Debug("bad padding", "cipher", id.String(), "error", err)
			return nil, fmt.Errorf("%s %s: %w", id, op, err)
		}
	case CFB, CFB1, CFB8, OFB, CTR:
		st := newStreamer(block, id.Mode, op, id.Describe().FeedbackBits, e.counterBits, reg)
		out = st.run(in)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, id.Mode)
	}

	switch id.Mode {
	case CBC, CFB, CFB1, CFB8, OFB:
		copy(ctx.IV, reg)
	case CTR:
		copy(ctx.Nonce, reg)
	}
	if op == encrypt {
		ctx.Ciphertext = out
	} else {
		ctx.Plaintext = out
	}

	return out, nil
}

func (e *Engine) measure(op direction, id Identifier, start time.Time, err *error) {
	if e.sink == nil {
		return
	}

	labels := []metrics.Label{{Name: "cipher", Value: id.String()}}
	elapsed := float32(time.Since(start)) / float32(time.Millisecond)

	e.sink.AddSampleWithLabels([]string{"blockcipher", op.String()}, elapsed, labels)
	e.sink.IncrCounterWithLabels([]string{"blockcipher", "operations"}, 1, labels)
	if *err != nil {
		e.sink.IncrCounterWithLabels([]string{"blockcipher", "failures"}, 1, labels)
	}
}
