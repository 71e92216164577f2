package line

func viInsertKeymap() *keymap {
	m := newKeymap(KeymapViInsert)
	bindCommon(m)

	m.bind(Action{Kind: ActionCommandMode}, KeyEscape)
	m.bind(Action{Kind: ActionDeleteCharOrEOF}, Ctrl('d'))
	m.bind(Action{Kind: ActionBackwardDeleteChar}, Ctrl('h'))
	m.bind(Action{Kind: ActionBackwardDeleteChar}, KeyBackspace)
	m.bind(Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionPrevBigWord}, Ctrl('w'))
	m.bind(Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionLineStart}, Ctrl('u'))
	m.bind(Action{Kind: ActionYank}, Ctrl('y'))
	m.bind(Action{Kind: ActionHistoryPrevious}, Ctrl('p'))
	m.bind(Action{Kind: ActionHistoryNext}, Ctrl('n'))
	m.bind(Action{Kind: ActionSearchBackward}, Ctrl('r'))
	m.bind(Action{Kind: ActionSearchForward}, Ctrl('s'))
	m.bind(Action{Kind: ActionComplete}, KeyTab)
	m.bind(Action{Kind: ActionClearScreen}, Ctrl('l'))
	m.bind(Action{Kind: ActionToggleEditMode}, Meta(rune(KeyCtrlJ[0])))
	return m
}

func viCommandKeymap() *keymap {
	m := newKeymap(KeymapViCommand)
	bindCommon(m)

	motions := map[Key]Motion{
		"h": MotionLeft,
		"l": MotionRight,
		" ": MotionRight,
		"w": MotionNextWord,
		"W": MotionNextBigWord,
		"b": MotionPrevWord,
		"B": MotionPrevBigWord,
		"e": MotionWordEnd,
		"E": MotionBigWordEnd,
		"0": MotionLineStart,
		"^": MotionFirstNonBlank,
		"$": MotionLineEnd,

		KeyBackspace: MotionLeft,
		Ctrl('h'):    MotionLeft,
	}
	for k, mo := range motions {
		m.bind(Action{Kind: ActionMove, Motion: mo}, k)
	}

	m.bind(Action{Kind: ActionOperate, Status: StatusDelete}, "d")
	m.bind(Action{Kind: ActionOperate, Status: StatusChange}, "c")
	m.bind(Action{Kind: ActionOperate, Status: StatusYank}, "y")
	m.bind(Action{Kind: ActionOperate, Status: StatusUpCase}, "g", "U")
	m.bind(Action{Kind: ActionOperate, Status: StatusDownCase}, "g", "u")

	m.bind(Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionRight}, "x")
	m.bind(Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionLeft}, "X")
	m.bind(Action{Kind: ActionOperate, Status: StatusDelete, Motion: MotionLineEnd}, "D")
	m.bind(Action{Kind: ActionOperate, Status: StatusChange, Motion: MotionLineEnd}, "C")
	m.bind(Action{Kind: ActionOperate, Status: StatusYank, Motion: MotionWholeLine}, "Y")
	m.bind(Action{Kind: ActionOperate, Status: StatusChange, Motion: MotionRight}, "s")
	m.bind(Action{Kind: ActionOperate, Status: StatusChange, Motion: MotionWholeLine}, "S")

	m.bind(Action{Kind: ActionPasteAfter}, "p")
	m.bind(Action{Kind: ActionYank}, "P")
	m.bind(Action{Kind: ActionUndo}, "u")
	m.bind(Action{Kind: ActionReplaceChar}, "r")
	m.bind(Action{Kind: ActionToggleCase}, "~")

	m.bind(Action{Kind: ActionInsertMode}, "i")
	m.bind(Action{Kind: ActionInsertMode, Motion: MotionRight}, "a")
	m.bind(Action{Kind: ActionInsertMode, Motion: MotionFirstNonBlank}, "I")
	m.bind(Action{Kind: ActionInsertMode, Motion: MotionLineEnd}, "A")

	m.bind(Action{Kind: ActionHistoryPrevious}, "k")
	m.bind(Action{Kind: ActionHistoryPrevious}, "-")
	m.bind(Action{Kind: ActionHistoryNext}, "j")
	m.bind(Action{Kind: ActionHistoryNext}, "+")
	m.bind(Action{Kind: ActionSearchBackward}, "/")
	m.bind(Action{Kind: ActionSearchForward}, "?")

	m.bind(Action{Kind: ActionDeleteCharOrEOF}, Ctrl('d'))
	m.bind(Action{Kind: ActionComplete}, KeyTab)
	m.bind(Action{Kind: ActionClearScreen}, Ctrl('l'))
	m.bind(Action{Kind: ActionToggleEditMode}, Meta(rune(KeyCtrlJ[0])))
	m.bind(Action{Kind: ActionToggleEditMode}, Ctrl('e'))
	return m
}
