package input

import "unicode"

// layout maps the keypad to the left block of a QWERTY keyboard:
//
//	1 2 3 C     1 2 3 4
//	4 5 6 D  -> Q W E R
//	7 8 9 E     A S D F
//	A 0 B F     Z X C V
var layout = [KeyCount]rune{
	0x0: 'x',
	0x1: '1',
	0x2: '2',
	0x3: '3',
	0x4: 'q',
	0x5: 'w',
	0x6: 'e',
	0x7: 'a',
	0x8: 's',
	0x9: 'd',
	0xA: 'z',
	0xB: 'c',
	0xC: '4',
	0xD: 'r',
	0xE: 'f',
	0xF: 'v',
}

// KeyForRune returns the keypad key that the keyboard character is mapped
// to. Letters are matched case insensitive.
func KeyForRune(r rune) (uint8, bool) {
	r = unicode.ToLower(r)
	for key, mapped := range layout {
		if mapped == r {
			return uint8(key), true
		}
	}
	return 0, false
}

// RuneForKey returns the keyboard character that the keypad key is mapped
// to.
func RuneForKey(key uint8) (rune, bool) {
	if key >= KeyCount {
		return 0, false
	}
	return layout[key], true
}
