package merge

import (
	"fmt"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Tokenizer defaults per backend.
const (
	defaultTiktokenModel = "gpt-4o"
	defaultHFModel       = "gpt2"
)

// Tokenizer estimates how many model tokens a text occupies.
type Tokenizer interface {
	Count(text string) (int, error)
	Name() string
}

type tiktokenCounter struct {
	enc   *tiktoken.Tiktoken
	model string
}

func (c *tiktokenCounter) Count(text string) (int, error) {
	return len(c.enc.EncodeOrdinary(text)), nil
}

func (c *tiktokenCounter) Name() string {
	return "tiktoken/" + c.model
}

type hfCounter struct {
	tk    *hf.Tokenizer
	model string
}

func (c *hfCounter) Count(text string) (int, error) {
	en, err := c.tk.EncodeSingle(text)
	if err != nil {
		return 0, fmt.Errorf("failed to encode text: %w", err)
	}
	return len(en.Tokens), nil
}

func (c *hfCounter) Name() string {
	return "huggingface/" + c.model
}

// NewTokenizer builds a token counter for the requested backend. The
// tiktoken backend resolves encodings locally; the huggingface backend may
// download the tokenizer definition on first use.
func NewTokenizer(backend, model string) (Tokenizer, error) {
	switch strings.ToLower(backend) {
	case "", "tiktoken":
		if model == "" {
			model = defaultTiktokenModel
		}
		enc, err := tiktoken.EncodingForModel(model)
		if err != nil {
			return nil, fmt.Errorf("unknown tiktoken model %q: %w", model, err)
		}
		return &tiktokenCounter{enc: enc, model: model}, nil

	case "huggingface", "hf":
		if model == "" {
			model = defaultHFModel
		}
		path, err := hf.CachedPath(model, "tokenizer.json")
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tokenizer for %q: %w", model, err)
		}
		tk, err := pretrained.FromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer for %q: %w", model, err)
		}
		return &hfCounter{tk: tk, model: model}, nil
	}
	return nil, fmt.Errorf("unsupported tokenizer %q (use tiktoken or huggingface)", backend)
}
