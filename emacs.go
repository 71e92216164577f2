package line

// bindCommon adds the keys every keymap understands: the cursor keys, Home
// and End, Delete, and interrupt.
func bindCommon(m *keymap) {
	m.bind(Action{Kind: ActionMove, Motion: MotionLeft}, KeyLeft)
	m.bind(Action{Kind: ActionMove, Motion: MotionRight}, KeyRight)
	m.bind(Action{Kind: ActionMove, Motion: MotionBackwardWord}, KeyCtrlLeft)
	m.bind(Action{Kind: ActionMove, Motion: MotionForwardWord}, KeyCtrlRight)
	m.bind(Action{Kind: ActionMove, Motion: MotionBackwardWord}, KeyAltLeft)
	m.bind(Action{Kind: ActionMove, Motion: MotionForwardWord}, KeyAltRight)
	m.bind(Action{Kind: ActionMove, Motion: MotionLineStart}, KeyHome)
	m.bind(Action{Kind: ActionMove, Motion: MotionLineEnd}, KeyEnd)
	m.bind(Action{Kind: ActionHistoryPrevious}, KeyUp)
	m.bind(Action{Kind: ActionHistoryNext}, KeyDown)
	m.bind(Action{Kind: ActionDeleteChar}, KeyDelete)
	m.bind(Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionForwardWord}, KeyCtrlDelete)
	m.bind(Action{Kind: ActionAcceptLine}, KeyEnter)
	m.bind(Action{Kind: ActionAcceptLine}, KeyCtrlJ)
	m.bind(Action{Kind: ActionInterrupt}, KeyCtrlC)
}

func emacsKeymap() *keymap {
	m := newKeymap(KeymapEmacs)
	bindCommon(m)

	m.bind(Action{Kind: ActionMove, Motion: MotionLineStart}, Ctrl('a'))
	m.bind(Action{Kind: ActionMove, Motion: MotionLineEnd}, Ctrl('e'))
	m.bind(Action{Kind: ActionMove, Motion: MotionLeft}, Ctrl('b'))
	m.bind(Action{Kind: ActionMove, Motion: MotionRight}, Ctrl('f'))
	m.bind(Action{Kind: ActionMove, Motion: MotionBackwardWord}, Meta('b'))
	m.bind(Action{Kind: ActionMove, Motion: MotionForwardWord}, Meta('f'))

	m.bind(Action{Kind: ActionDeleteCharOrEOF}, Ctrl('d'))
	// ^H and DEL, terminals send either for backspace.
	m.bind(Action{Kind: ActionBackwardDeleteChar}, Ctrl('h'))
	m.bind(Action{Kind: ActionBackwardDeleteChar}, KeyBackspace)
	m.bind(Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionLineEnd}, Ctrl('k'))
	m.bind(Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionLineStart}, Ctrl('u'))
	m.bind(Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionPrevBigWord}, Ctrl('w'))
	m.bind(Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionForwardWord}, Meta('d'))
	m.bind(Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionBackwardWord}, Meta(rune(KeyBackspace[0])))
	m.bind(Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionBackwardWord}, Meta('\b'))
	m.bind(Action{Kind: ActionOperate, Status: StatusUpCase, Motion: MotionForwardWord}, Meta('u'))
	m.bind(Action{Kind: ActionOperate, Status: StatusDownCase, Motion: MotionForwardWord}, Meta('l'))
	m.bind(Action{Kind: ActionOperate, Status: StatusCapitalize, Motion: MotionForwardWord}, Meta('c'))

	m.bind(Action{Kind: ActionYank}, Ctrl('y'))
	// alt-.: insert the last word of the previous line, like `!$` in shells.
	m.bind(Action{Kind: ActionYankLastArg}, Meta('.'))
	m.bind(Action{Kind: ActionYankLastArg}, Meta('_'))
	m.bind(Action{Kind: ActionTransposeChars}, Ctrl('t'))

	m.bind(Action{Kind: ActionHistoryPrevious}, Ctrl('p'))
	m.bind(Action{Kind: ActionHistoryNext}, Ctrl('n'))
	m.bind(Action{Kind: ActionSearchBackward}, Ctrl('r'))
	m.bind(Action{Kind: ActionSearchForward}, Ctrl('s'))

	m.bind(Action{Kind: ActionComplete}, KeyTab)
	m.bind(Action{Kind: ActionClearScreen}, Ctrl('l'))
	m.bind(Action{Kind: ActionCancel}, Ctrl('g'))

	m.bind(Action{Kind: ActionUndo}, KeyCtrlUnderscore)
	m.bind(Action{Kind: ActionUndo}, Ctrl('x'), Ctrl('u'))
	m.bind(Action{Kind: ActionToggleEditMode}, Meta(rune(KeyCtrlJ[0])))
	m.bind(Action{Kind: ActionToggleEditMode}, Ctrl('x'), Ctrl('v'))
	return m
}
