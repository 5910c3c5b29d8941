package types

import "strings"

// answer value variants
const (
	ANSWER_DTYPE_STR     = "str"
	ANSWER_DTYPE_NUM     = "num"
	ANSWER_DTYPE_OPTION  = "option"
	ANSWER_DTYPE_OPTIONS = "options"
	ANSWER_DTYPE_RANGE   = "range"
)

// AnswerValue is a tagged union over the answer shapes a question can produce.
// DType selects the variant, only the matching field is meaningful.
type AnswerValue struct {
	DType   string       `bson:"dtype,omitempty" json:"dtype,omitempty"`
	Str     string       `bson:"str,omitempty" json:"str,omitempty"`
	Num     float64      `bson:"num,omitempty" json:"num,omitempty"`
	Option  int          `bson:"option,omitempty" json:"option,omitempty"`
	Options []int        `bson:"options,omitempty" json:"options,omitempty"`
	Range   *AnswerRange `bson:"range,omitempty" json:"range,omitempty"`
}

type AnswerRange struct {
	Start string `bson:"start,omitempty" json:"start,omitempty"`
	End   string `bson:"end,omitempty" json:"end,omitempty"`
}

func StringAnswer(value string) AnswerValue {
	return AnswerValue{DType: ANSWER_DTYPE_STR, Str: value}
}

func NumberAnswer(value float64) AnswerValue {
	return AnswerValue{DType: ANSWER_DTYPE_NUM, Num: value}
}

func OptionAnswer(index int) AnswerValue {
	return AnswerValue{DType: ANSWER_DTYPE_OPTION, Option: index}
}

func OptionsAnswer(indices ...int) AnswerValue {
	return AnswerValue{DType: ANSWER_DTYPE_OPTIONS, Options: indices}
}

func RangeAnswer(start string, end string) AnswerValue {
	return AnswerValue{DType: ANSWER_DTYPE_RANGE, Range: &AnswerRange{Start: start, End: end}}
}

// EmptyAnswer is the explicit "no value" marker, equivalent to absence.
func EmptyAnswer() AnswerValue {
	return AnswerValue{}
}

func (v AnswerValue) IsString() bool {
	return v.DType == ANSWER_DTYPE_STR
}

func (v AnswerValue) IsNumber() bool {
	return v.DType == ANSWER_DTYPE_NUM
}

func (v AnswerValue) IsOption() bool {
	return v.DType == ANSWER_DTYPE_OPTION
}

func (v AnswerValue) IsOptionSet() bool {
	return v.DType == ANSWER_DTYPE_OPTIONS
}

func (v AnswerValue) IsRange() bool {
	return v.DType == ANSWER_DTYPE_RANGE
}

// IsEmpty reports whether the value counts as "not answered": no variant
// selected, blank string, empty option set or a range with neither end set.
func (v AnswerValue) IsEmpty() bool {
	switch v.DType {
	case ANSWER_DTYPE_STR:
		return v.Str == ""
	case ANSWER_DTYPE_NUM, ANSWER_DTYPE_OPTION:
		return false
	case ANSWER_DTYPE_OPTIONS:
		return len(v.Options) == 0
	case ANSWER_DTYPE_RANGE:
		return v.Range == nil || (v.Range.Start == "" && v.Range.End == "")
	default:
		return true
	}
}

// SelectedOptions normalizes choice answers to a list of option indices.
// A single selection is treated as a one-element set.
func (v AnswerValue) SelectedOptions() []int {
	switch v.DType {
	case ANSWER_DTYPE_OPTION:
		return []int{v.Option}
	case ANSWER_DTYPE_OPTIONS:
		return v.Options
	default:
		return nil
	}
}

func (v AnswerValue) HasSelectedOption(index int) bool {
	for _, selected := range v.SelectedOptions() {
		if selected == index {
			return true
		}
	}
	return false
}

// IsBlankText reports whether a text answer is missing or whitespace only.
func (v AnswerValue) IsBlankText() bool {
	return v.DType != ANSWER_DTYPE_STR || strings.TrimSpace(v.Str) == ""
}
