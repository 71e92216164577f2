package line

import (
	"fmt"
)

// ActionKind discriminates Action.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionMove
	ActionOperate
	ActionBackwardDeleteChar
	ActionDeleteChar
	ActionDeleteCharOrEOF
	ActionAcceptLine
	ActionComplete
	ActionHistoryPrevious
	ActionHistoryNext
	ActionSearchBackward
	ActionSearchForward
	ActionUndo
	ActionYank
	ActionPasteAfter
	ActionTransposeChars
	ActionToggleCase
	ActionReplaceChar
	ActionInsertMode
	ActionCommandMode
	ActionClearScreen
	ActionCancel
	ActionInterrupt
	ActionToggleEditMode
	ActionYankLastArg
	ActionViEditingMode
	ActionEmacsEditingMode
)

var actionKindNames = [...]string{
	ActionNone:               "none",
	ActionMove:               "move",
	ActionOperate:            "operate",
	ActionBackwardDeleteChar: "backward-delete-char",
	ActionDeleteChar:         "delete-char",
	ActionDeleteCharOrEOF:    "delete-char-or-eof",
	ActionAcceptLine:         "accept-line",
	ActionComplete:           "complete",
	ActionHistoryPrevious:    "previous-history",
	ActionHistoryNext:        "next-history",
	ActionSearchBackward:     "reverse-search-history",
	ActionSearchForward:      "forward-search-history",
	ActionUndo:               "undo",
	ActionYank:               "yank",
	ActionPasteAfter:         "paste-after",
	ActionTransposeChars:     "transpose-chars",
	ActionToggleCase:         "toggle-case",
	ActionReplaceChar:        "replace-char",
	ActionInsertMode:         "insert-mode",
	ActionCommandMode:        "command-mode",
	ActionClearScreen:        "clear-screen",
	ActionCancel:             "abort",
	ActionInterrupt:          "interrupt",
	ActionToggleEditMode:     "toggle-editing-mode",
	ActionYankLastArg:        "yank-last-arg",
	ActionViEditingMode:      "vi-editing-mode",
	ActionEmacsEditingMode:   "emacs-editing-mode",
}

func (k ActionKind) String() string {
	if k >= 0 && int(k) < len(actionKindNames) {
		return actionKindNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Status is the edit mode's state within its mode: plain command or insert
// status, or the operator a chained action is waiting to apply.
type Status int

const (
	StatusCommand Status = iota
	StatusInsert
	StatusDelete
	StatusChange
	StatusYank
	StatusMove
	StatusUpCase
	StatusDownCase
	StatusCapitalize
)

func (s Status) String() string {
	switch s {
	case StatusCommand:
		return "command"
	case StatusInsert:
		return "insert"
	case StatusDelete:
		return "delete"
	case StatusChange:
		return "change"
	case StatusYank:
		return "yank"
	case StatusMove:
		return "move"
	case StatusUpCase:
		return "upcase"
	case StatusDownCase:
		return "downcase"
	case StatusCapitalize:
		return "capitalize"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// isOperator reports whether s waits for a motion.
func (s Status) isOperator() bool {
	switch s {
	case StatusDelete, StatusChange, StatusYank, StatusUpCase, StatusDownCase, StatusCapitalize:
		return true
	}
	return false
}

// Motion names a cursor target relative to the current position.
type Motion int

const (
	MotionNone Motion = iota
	MotionLeft
	MotionRight
	MotionNextWord
	MotionNextBigWord
	MotionPrevWord
	MotionPrevBigWord
	MotionWordEnd
	MotionBigWordEnd
	MotionForwardWord
	MotionBackwardWord
	MotionLineStart
	MotionLineEnd
	MotionFirstNonBlank
	MotionWholeLine
)

// inclusive reports whether an operator over the motion covers the
// character the motion lands on.
func (m Motion) inclusive() bool {
	return m == MotionWordEnd || m == MotionBigWordEnd
}

// Action is what a key resolves to. Kind selects the operation; the other
// fields are read only by the kinds that need them.
type Action struct {
	Kind   ActionKind
	Status Status // operator for ActionOperate
	Motion Motion
	Count  int
	Char   rune
}

func (a Action) String() string {
	switch a.Kind {
	case ActionMove, ActionInsertMode:
		return fmt.Sprintf("%v(%d, count=%d)", a.Kind, a.Motion, a.Count)
	case ActionOperate:
		return fmt.Sprintf("%v(%v, %d, count=%d)", a.Kind, a.Status, a.Motion, a.Count)
	case ActionReplaceChar:
		return fmt.Sprintf("%v(%q, count=%d)", a.Kind, a.Char, a.Count)
	}
	return a.Kind.String()
}

func (a Action) count() int {
	return max(a.Count, 1)
}

// changesLine reports whether executing the action may modify the line, so
// that an undo snapshot is taken first.
func (a Action) changesLine() bool {
	switch a.Kind {
	case ActionOperate:
		return a.Status != StatusYank && a.Status != StatusMove
	case ActionBackwardDeleteChar, ActionDeleteChar, ActionDeleteCharOrEOF,
		ActionYank, ActionPasteAfter, ActionTransposeChars, ActionToggleCase,
		ActionReplaceChar, ActionComplete, ActionYankLastArg:
		return true
	}
	return false
}

// actionsByName are the functions bindable from configuration, named as in
// GNU readline where there is an equivalent.
var actionsByName = map[string]Action{
	"beginning-of-line":      {Kind: ActionMove, Motion: MotionLineStart},
	"end-of-line":            {Kind: ActionMove, Motion: MotionLineEnd},
	"forward-char":           {Kind: ActionMove, Motion: MotionRight},
	"backward-char":          {Kind: ActionMove, Motion: MotionLeft},
	"forward-word":           {Kind: ActionMove, Motion: MotionForwardWord},
	"backward-word":          {Kind: ActionMove, Motion: MotionBackwardWord},
	"delete-char":            {Kind: ActionDeleteChar},
	"delete-char-or-eof":     {Kind: ActionDeleteCharOrEOF},
	"backward-delete-char":   {Kind: ActionBackwardDeleteChar},
	"kill-line":              {Kind: ActionOperate, Status: StatusDelete, Motion: MotionLineEnd},
	"backward-kill-line":     {Kind: ActionOperate, Status: StatusDelete, Motion: MotionLineStart},
	"kill-whole-line":        {Kind: ActionOperate, Status: StatusDelete, Motion: MotionWholeLine},
	"kill-word":              {Kind: ActionOperate, Status: StatusDelete, Motion: MotionForwardWord},
	"backward-kill-word":     {Kind: ActionOperate, Status: StatusDelete, Motion: MotionBackwardWord},
	"unix-word-rubout":       {Kind: ActionOperate, Status: StatusDelete, Motion: MotionPrevBigWord},
	"upcase-word":            {Kind: ActionOperate, Status: StatusUpCase, Motion: MotionForwardWord},
	"downcase-word":          {Kind: ActionOperate, Status: StatusDownCase, Motion: MotionForwardWord},
	"capitalize-word":        {Kind: ActionOperate, Status: StatusCapitalize, Motion: MotionForwardWord},
	"yank":                   {Kind: ActionYank},
	"yank-last-arg":          {Kind: ActionYankLastArg},
	"transpose-chars":        {Kind: ActionTransposeChars},
	"accept-line":            {Kind: ActionAcceptLine},
	"complete":               {Kind: ActionComplete},
	"previous-history":       {Kind: ActionHistoryPrevious},
	"next-history":           {Kind: ActionHistoryNext},
	"reverse-search-history": {Kind: ActionSearchBackward},
	"forward-search-history": {Kind: ActionSearchForward},
	"undo":                   {Kind: ActionUndo},
	"clear-screen":           {Kind: ActionClearScreen},
	"abort":                  {Kind: ActionCancel},
	"toggle-editing-mode":    {Kind: ActionToggleEditMode},
	"vi-editing-mode":        {Kind: ActionViEditingMode},
	"emacs-editing-mode":     {Kind: ActionEmacsEditingMode},
	"vi-movement-mode":       {Kind: ActionCommandMode},
	"vi-insertion-mode":      {Kind: ActionInsertMode},
	"vi-append-mode":         {Kind: ActionInsertMode, Motion: MotionRight},
	"vi-change-case":         {Kind: ActionToggleCase},
	"vi-put":                 {Kind: ActionPasteAfter},
	"vi-delete-to":           {Kind: ActionOperate, Status: StatusDelete},
	"vi-change-to":           {Kind: ActionOperate, Status: StatusChange},
	"vi-yank-to":             {Kind: ActionOperate, Status: StatusYank},
}

// ActionByName looks up a bindable function.
func ActionByName(name string) (Action, bool) {
	a, ok := actionsByName[name]
	return a, ok
}
