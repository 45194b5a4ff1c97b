package questions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the bank file major version this build understands.
const SupportedMajor = "v1"

// ErrUnsupportedBankVersion is returned for bank files with a missing,
// malformed or incompatible version.
var ErrUnsupportedBankVersion = errors.New("unsupported bank version")

// bankFile is the on-disk layout of one deck file.
type bankFile struct {
	Version   string        `yaml:"version" json:"version"`
	Deck      string        `yaml:"deck" json:"deck"`
	Questions []questionDoc `yaml:"questions" json:"questions"`
	Phases    []phaseDoc    `yaml:"phases,omitempty" json:"phases,omitempty"`
}

type phaseDoc struct {
	ID       int    `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Tagline  string `yaml:"tagline" json:"tagline"`
	FirstDay int    `yaml:"first_day" json:"first_day"`
	LastDay  int    `yaml:"last_day" json:"last_day"`
	Badge    string `yaml:"badge" json:"badge"`
}

type questionDoc struct {
	ID          string     `yaml:"id" json:"id"`
	Prompt      string     `yaml:"prompt" json:"prompt"`
	Answer      answerDoc  `yaml:"answer" json:"answer"`
	Explanation string     `yaml:"explanation" json:"explanation"`
	Category    string     `yaml:"category" json:"category"`
	Difficulty  string     `yaml:"difficulty" json:"difficulty"`
	Visual      *visualDoc `yaml:"visual,omitempty" json:"visual,omitempty"`
	Lesson      *lessonDoc `yaml:"lesson,omitempty" json:"lesson,omitempty"`
}

type answerDoc struct {
	Side    string   `yaml:"side,omitempty" json:"side,omitempty"`
	Options []string `yaml:"options,omitempty" json:"options,omitempty"`
	Correct *int     `yaml:"correct,omitempty" json:"correct,omitempty"`
}

type visualDoc struct {
	Chart   string `yaml:"chart" json:"chart"`
	Pattern string `yaml:"pattern" json:"pattern"`
}

type lessonDoc struct {
	Day       int           `yaml:"day" json:"day"`
	Phase     int           `yaml:"phase" json:"phase"`
	Title     string        `yaml:"title" json:"title"`
	Badge     string        `yaml:"badge,omitempty" json:"badge,omitempty"`
	Trade     *tradeDoc     `yaml:"trade,omitempty" json:"trade,omitempty"`
	Theory    *theoryDoc    `yaml:"theory,omitempty" json:"theory,omitempty"`
	Challenge *challengeDoc `yaml:"challenge,omitempty" json:"challenge,omitempty"`
}

type theoryDoc struct {
	Title      string   `yaml:"title" json:"title"`
	Points     []string `yaml:"points" json:"points"`
	KeyTerm    string   `yaml:"key_term" json:"key_term"`
	KeyTermDef string   `yaml:"key_term_def" json:"key_term_def"`
	Unlock     string   `yaml:"unlock,omitempty" json:"unlock,omitempty"`
}

type challengeDoc struct {
	Title       string          `yaml:"title" json:"title"`
	Scenario    string          `yaml:"scenario" json:"scenario"`
	PriceData   []pricePointDoc `yaml:"price_data" json:"price_data"`
	Prompt      string          `yaml:"prompt" json:"prompt"`
	Options     []string        `yaml:"options" json:"options"`
	Correct     int             `yaml:"correct" json:"correct"`
	Explanation string          `yaml:"explanation" json:"explanation"`
}

type pricePointDoc struct {
	Label string `yaml:"label" json:"label"`
	Price int    `yaml:"price" json:"price"`
	Note  string `yaml:"note,omitempty" json:"note,omitempty"`
}

type tradeDoc struct {
	Stock     string `yaml:"stock" json:"stock"`
	BuyPrice  int    `yaml:"buy_price" json:"buy_price"`
	SellPrice int    `yaml:"sell_price" json:"sell_price"`
	Profit    int    `yaml:"profit" json:"profit"`
}

// DeckFile is one parsed bank file. Only lesson files carry phases.
type DeckFile struct {
	Version   string
	Deck      Deck
	Questions []Question
	Phases    []Phase
}

// LoadFile reads and validates a bank file. Files ending in .json are
// decoded as JSON, everything else as YAML.
func LoadFile(path string) (DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DeckFile{}, fmt.Errorf("read bank file: %w", err)
	}
	df, err := Parse(data, path)
	if err != nil {
		return DeckFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return df, nil
}

// Parse decodes bank file contents. name is only used to pick the format.
func Parse(data []byte, name string) (DeckFile, error) {
	isJSON := strings.EqualFold(filepath.Ext(name), ".json")

	var doc any
	if isJSON {
		err := json.Unmarshal(data, &doc)
		if err != nil {
			return DeckFile{}, fmt.Errorf("parse json: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &doc); err != nil {
		return DeckFile{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return DeckFile{}, err
	}

	var f bankFile
	var err error
	if isJSON {
		f, err = parseJSON(data)
	} else {
		f, err = parseYAML(data)
	}
	if err != nil {
		return DeckFile{}, err
	}

	if err := checkVersion(f.Version); err != nil {
		return DeckFile{}, err
	}
	deck, err := ParseDeck(f.Deck)
	if err != nil {
		return DeckFile{}, err
	}

	qs := make([]Question, 0, len(f.Questions))
	for _, d := range f.Questions {
		q, err := d.toQuestion()
		if err != nil {
			return DeckFile{}, err
		}
		qs = append(qs, q)
	}
	if err := validateQuestions(qs); err != nil {
		return DeckFile{}, err
	}

	if len(f.Phases) > 0 && deck != DeckLessons {
		return DeckFile{}, fmt.Errorf("%w: deck %s cannot declare phases", ErrInvalidPhase, deck)
	}
	phases := make([]Phase, 0, len(f.Phases))
	for _, p := range f.Phases {
		phases = append(phases, Phase(p))
	}
	if err := validatePhases(phases); err != nil {
		return DeckFile{}, err
	}
	return DeckFile{Version: f.Version, Deck: deck, Questions: qs, Phases: phases}, nil
}

func parseJSON(data []byte) (bankFile, error) {
	var f bankFile
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&f); err != nil {
		return bankFile{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return bankFile{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return bankFile{}, fmt.Errorf("parse json: %w", err)
	}
	return f, nil
}

func parseYAML(data []byte) (bankFile, error) {
	var f bankFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return bankFile{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return bankFile{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return bankFile{}, fmt.Errorf("parse yaml: %w", err)
	}
	return f, nil
}

// checkVersion accepts any semantic version within SupportedMajor.
// A missing "v" prefix is tolerated.
func checkVersion(v string) error {
	canon := v
	if !strings.HasPrefix(canon, "v") {
		canon = "v" + canon
	}
	if !semver.IsValid(canon) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedBankVersion, v)
	}
	if major := semver.Major(canon); major != SupportedMajor {
		return fmt.Errorf("%w: %s (want %s.x.x)", ErrUnsupportedBankVersion, v, SupportedMajor)
	}
	return nil
}

func (d questionDoc) toQuestion() (Question, error) {
	q := Question{
		ID:          d.ID,
		Prompt:      d.Prompt,
		Explanation: d.Explanation,
		Category:    Category(d.Category),
		Difficulty:  Difficulty(d.Difficulty),
	}

	switch {
	case d.Answer.Side != "":
		side, err := ParseSide(d.Answer.Side)
		if err != nil {
			return Question{}, fmt.Errorf("%w: question %q: %v", ErrInvalidQuestion, d.ID, err)
		}
		q.Answer = BinaryChoice{Correct: side}
	case d.Answer.Correct != nil:
		q.Answer = MultipleChoice{Options: d.Answer.Options, Correct: *d.Answer.Correct}
	default:
		return Question{}, fmt.Errorf("%w: question %q has no answer", ErrInvalidQuestion, d.ID)
	}

	if d.Visual != nil {
		q.Visual = &Visual{Chart: d.Visual.Chart, Pattern: d.Visual.Pattern}
	}
	if d.Lesson != nil {
		q.Lesson = &Lesson{
			Day:   d.Lesson.Day,
			Phase: d.Lesson.Phase,
			Title: d.Lesson.Title,
			Badge: d.Lesson.Badge,
		}
		if t := d.Lesson.Trade; t != nil {
			q.Lesson.Trade = Trade{Stock: t.Stock, BuyPrice: t.BuyPrice, SellPrice: t.SellPrice, Profit: t.Profit}
		}
		if t := d.Lesson.Theory; t != nil {
			q.Lesson.Theory = Theory{
				Title:      t.Title,
				Points:     t.Points,
				KeyTerm:    t.KeyTerm,
				KeyTermDef: t.KeyTermDef,
				Unlock:     t.Unlock,
			}
		}
		if c := d.Lesson.Challenge; c != nil {
			ch := &Challenge{
				Title:       c.Title,
				Scenario:    c.Scenario,
				Prompt:      c.Prompt,
				Options:     c.Options,
				Correct:     c.Correct,
				Explanation: c.Explanation,
			}
			for _, p := range c.PriceData {
				ch.PriceData = append(ch.PriceData, PricePoint(p))
			}
			q.Lesson.Challenge = ch
		}
	}
	return q, nil
}
