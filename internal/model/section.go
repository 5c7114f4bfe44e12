package model

import "encoding/json"

// SectionKind discriminates the closed set of primary section variants.
type SectionKind string

const (
	SectionContent         SectionKind = "content"
	SectionDiscussion      SectionKind = "discussion"
	SectionParameters      SectionKind = "parameters"
	SectionDeclarations    SectionKind = "declarations"
	SectionHero            SectionKind = "hero"
	SectionTutorialTasks   SectionKind = "tasks"
	SectionAssessments     SectionKind = "assessments"
	SectionCallToAction    SectionKind = "callToAction"
	SectionVolume          SectionKind = "volume"
	SectionResources       SectionKind = "resources"
	SectionContentAndMedia SectionKind = "contentAndMedia"
	SectionUnsupported     SectionKind = "unsupported"
)

// Section is one primary section of a document. Exactly the fields for the
// active Kind are populated; unknown kinds decode to SectionUnsupported and
// render to nothing.
type Section struct {
	Kind    SectionKind
	Title   string
	Content []Block

	// declarations
	Declarations []Declaration

	// parameters
	Parameters []Parameter

	// hero / callToAction
	Chapter       string
	Abstract      []Inline
	EstimatedTime string
	Action        string // target id of the call-to-action link
	Image         string // target id of a background or card image

	// tasks
	Tasks []Task

	// assessments
	Assessments []Assessment

	// volume
	Chapters []Chapter

	// contentAndMedia
	Media         string
	MediaPosition string
}

// Declaration is one declaration fragment list for a symbol.
type Declaration struct {
	Tokens    []DeclarationToken `json:"tokens,omitempty"`
	Languages []string           `json:"languages,omitempty"`
}

// DeclarationToken is a single lexical token of a declaration. Kind "text"
// renders with no class; a resolvable Identifier additionally wraps the token
// in a link.
type DeclarationToken struct {
	Text       string `json:"text"`
	Kind       string `json:"kind,omitempty"`
	Identifier string `json:"identifier,omitempty"`
}

// Parameter is one documented function/initializer parameter.
type Parameter struct {
	Name    string  `json:"name"`
	Content []Block `json:"content,omitempty"`
}

// Task is one step group within a tutorial.
type Task struct {
	Title   string  `json:"title,omitempty"`
	Anchor  string  `json:"anchor,omitempty"`
	Content []Block `json:"content,omitempty"`
}

// Assessment is one knowledge-check entry.
type Assessment struct {
	Title   string  `json:"title,omitempty"`
	Content []Block `json:"content,omitempty"`
}

// Chapter is one chapter of a tutorial overview volume.
type Chapter struct {
	Name      string   `json:"name,omitempty"`
	Content   []Block  `json:"content,omitempty"`
	Tutorials []string `json:"tutorials,omitempty"`
	Image     string   `json:"image,omitempty"`
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind          SectionKind  `json:"kind"`
		Title         string       `json:"title"`
		Content       []Block      `json:"content"`
		Declarations  []Declaration `json:"declarations"`
		Parameters    []Parameter  `json:"parameters"`
		Chapter       string       `json:"chapter"`
		Abstract      []Inline     `json:"abstract"`
		EstimatedTime string       `json:"estimatedTimeInMinutes"`
		Action        string       `json:"action"`
		Image         string       `json:"image"`
		Tasks         []Task       `json:"tasks"`
		Assessments   []Assessment `json:"assessments"`
		Chapters      []Chapter    `json:"chapters"`
		Media         string       `json:"media"`
		MediaPosition string       `json:"mediaPosition"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	kind := raw.Kind
	switch kind {
	case SectionContent, SectionDiscussion, SectionParameters, SectionDeclarations,
		SectionHero, SectionTutorialTasks, SectionAssessments, SectionCallToAction,
		SectionVolume, SectionResources, SectionContentAndMedia:
	case "":
		kind = SectionContent
	default:
		kind = SectionUnsupported
	}
	*s = Section{
		Kind:          kind,
		Title:         raw.Title,
		Content:       raw.Content,
		Declarations:  raw.Declarations,
		Parameters:    raw.Parameters,
		Chapter:       raw.Chapter,
		Abstract:      raw.Abstract,
		EstimatedTime: raw.EstimatedTime,
		Action:        raw.Action,
		Image:         raw.Image,
		Tasks:         raw.Tasks,
		Assessments:   raw.Assessments,
		Chapters:      raw.Chapters,
		Media:         raw.Media,
		MediaPosition: raw.MediaPosition,
	}
	return nil
}
