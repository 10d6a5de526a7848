package encoding

// ISO 5426 mirrors ISO-8859-1 in the 0x20-0x7E and 0xA0-0xFF ranges. The
// 0x80-0x9F range holds combining diacritics and extra Latin letters used
// by bibliographic data; this table covers the characters actually seen in
// practice rather than the full 76-position standard. An unmapped byte in
// this range is substituted with U+FFFD, the one substitution the codec
// permits (spec.md §4.1), instead of failing the whole field.
var iso5426SpecialToRune = map[byte]rune{
	0x80: '̀', // combining grave accent
	0x81: '́', // combining acute accent
	0x82: '̂', // combining circumflex accent
	0x83: '̃', // combining tilde
	0x84: '̄', // combining macron
	0x85: '̆', // combining breve
	0x86: '̇', // combining dot above
	0x87: '̈', // combining diaeresis
	0x88: '̌', // combining caron
	0x89: '̊', // combining ring above
	0x8A: '̋', // combining double acute accent
	0x8B: '̧', // combining cedilla
	0x8C: '̨', // combining ogonek
	0x8D: '̣', // combining dot below
	// 0x8E, 0x8F intentionally unmapped: not observed in source data.
	0x90: '̓', // combining comma above
	0x91: '̔', // combining reversed comma above
	0x92: '̉', // combining hook above
	0x93: 'ı', // dotless i
	0x94: 'œ', // small ligature oe
	0x95: 'Œ', // capital ligature OE
	0x96: 'ß', // sharp s
	0x97: 'ŋ', // small letter eng
	0x98: 'ø', // small o with stroke
	0x99: 'Ø', // capital O with stroke
	0x9A: 'æ', // small ae
	0x9B: 'Æ', // capital AE
	0x9C: 'đ', // small d with stroke
	0x9D: 'Đ', // capital D with stroke
	0x9E: 'þ', // small thorn
	0x9F: 'Þ', // capital THORN
}

var iso5426RuneToSpecial = func() map[rune]byte {
	m := make(map[rune]byte, len(iso5426SpecialToRune))
	for b, r := range iso5426SpecialToRune {
		m[r] = b
	}
	return m
}()

func decodeIso5426(data []byte) (string, error) {
	runes := make([]rune, 0, len(data))
	for _, b := range data {
		switch {
		case b >= 0x20 && b <= 0x7E:
			runes = append(runes, rune(b))
		case b == 0x09 || b == 0x0A || b == 0x0D:
			runes = append(runes, rune(b))
		case b <= 0x1F || b == 0x7F:
			// control bytes outside {0x09, 0x0A, 0x0D} are dropped.
		case b >= 0x80 && b <= 0x9F:
			if r, ok := iso5426SpecialToRune[b]; ok {
				runes = append(runes, r)
			} else {
				runes = append(runes, '�')
			}
		default: // 0xA0-0xFF, same as ISO-8859-1
			runes = append(runes, rune(b))
		}
	}
	return string(runes), nil
}

func encodeIso5426(text string) ([]byte, error) {
	out := make([]byte, 0, len(text))
	for i, r := range text {
		switch {
		case r >= 0x20 && r <= 0x7E:
			out = append(out, byte(r))
		case r == 0x09 || r == 0x0A || r == 0x0D:
			out = append(out, byte(r))
		case r >= 0xA0 && r <= 0xFF:
			out = append(out, byte(r))
		default:
			if b, ok := iso5426RuneToSpecial[r]; ok {
				out = append(out, b)
				continue
			}
			return nil, &Failure{Encoding: Iso5426, Position: i, Reason: "unmappable rune in ISO 5426"}
		}
	}
	return out, nil
}
