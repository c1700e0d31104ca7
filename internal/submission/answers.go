package submission

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Sentinel answers the issue form produces for fields left blank.
const (
	NoResponse = "_No response_"
	NoneAnswer = "None"
)

// Slot names one positional answer of the issue form.
type Slot int

const (
	SlotDate Slot = iota
	SlotType
	SlotProduct
	SlotSupportLoad
	SlotProject1ID
	SlotProject1Load
	SlotProject2ID
	SlotProject2Load
	SlotProject3ID
	SlotProject3Load

	slotCount
)

var slotNames = [slotCount]string{
	"date",
	"type",
	"product",
	"support_load",
	"project1_id",
	"project1_load",
	"project2_id",
	"project2_load",
	"project3_id",
	"project3_load",
}

// SlotCount is the number of answers the issue form defines.
const SlotCount = int(slotCount)

func (s Slot) String() string {
	if s < 0 || s >= slotCount {
		return "slot(" + strconv.Itoa(int(s)) + ")"
	}
	return slotNames[s]
}

// Slots returns the form slots in positional order.
func Slots() []Slot {
	out := make([]Slot, 0, slotCount)
	for s := Slot(0); s < slotCount; s++ {
		out = append(out, s)
	}
	return out
}

// answers holds one trimmed value per slot.
type answers [slotCount]string

func (a answers) get(s Slot) string { return a[s] }

// projectSlots pairs every project id slot with its load slot.
var projectSlots = [...][2]Slot{
	{SlotProject1ID, SlotProject1Load},
	{SlotProject2ID, SlotProject2Load},
	{SlotProject3ID, SlotProject3Load},
}

// mapAnswers consumes the segmented sequence slot by slot. Answers past the
// last slot are ignored.
func mapAnswers(segments []string) (answers, error) {
	var out answers
	if len(segments) < SlotCount {
		return out, newMalformedIssue(len(segments))
	}
	for s := Slot(0); s < slotCount; s++ {
		out[s] = strings.TrimSpace(segments[s])
	}
	return out, nil
}

// Answered reports whether value is a real answer rather than one of the
// form's blank sentinels. Empty values count as unanswered.
func Answered(value string) bool {
	switch strings.TrimSpace(value) {
	case "", NoResponse, NoneAnswer:
		return false
	}
	return true
}

var decimalPattern = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)

// parseLoad accepts unsigned decimals only. Anything else is NaN.
func parseLoad(value string) float64 {
	value = strings.TrimSpace(value)
	if !decimalPattern.MatchString(value) {
		return math.NaN()
	}
	load, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(load, 0) {
		return math.NaN()
	}
	return load
}

// truthy mirrors the retention rule: zero and NaN loads are dropped.
func truthy(load float64) bool {
	return load != 0 && !math.IsNaN(load)
}

// collectAllocations builds the support candidate and the three project
// candidates and keeps those with an answered id and a truthy load.
func collectAllocations(a answers) []ProjectAllocation {
	type candidate struct {
		id   string
		load string
	}
	candidates := make([]candidate, 0, len(projectSlots)+1)
	candidates = append(candidates, candidate{id: SupportProjectID, load: a.get(SlotSupportLoad)})
	for _, pair := range projectSlots {
		candidates = append(candidates, candidate{id: a.get(pair[0]), load: a.get(pair[1])})
	}

	projects := make([]ProjectAllocation, 0, len(candidates))
	for _, c := range candidates {
		if !Answered(c.id) || !Answered(c.load) {
			continue
		}
		load := parseLoad(c.load)
		if !truthy(load) {
			continue
		}
		projects = append(projects, ProjectAllocation{ID: c.id, Load: load})
	}
	return projects
}
