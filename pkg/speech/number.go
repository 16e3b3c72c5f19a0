package speech

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

var englishUnits = map[string]int{
	"zero": 0, "oh": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11,
	"twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fourty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var englishScales = map[string]int{
	"thousand": 1_000,
	"million":  1_000_000,
}

var chineseDigits = map[rune]int{
	'零': 0, '〇': 0, '一': 1, '二': 2, '两': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

var chineseUnits = map[rune]int{
	'十': 10, '百': 100, '千': 1_000,
}

// ParseUtterance extracts the number a player said. Supported are digits
// ("42", "-7", full width "４２"), English words ("minus forty-two",
// "one hundred and three") and Chinese numerals ("四十二", "负七"). Anything
// else is reported with ok=false.
func ParseUtterance(text string) (value int, ok bool) {
	normalized := strings.ToLower(strings.TrimSpace(width.Narrow.String(text)))
	normalized = strings.TrimRightFunc(normalized, func(r rune) bool {
		return unicode.IsPunct(r) && r != '-'
	})
	if normalized == "" {
		return 0, false
	}

	if v, err := strconv.Atoi(strings.ReplaceAll(normalized, " ", "")); err == nil {
		return v, true
	}
	if v, ok := parseEnglish(normalized); ok {
		return v, true
	}
	return parseChinese(normalized)
}

func parseEnglish(text string) (int, bool) {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == ','
	})
	if len(words) == 0 {
		return 0, false
	}

	sign := 1
	switch words[0] {
	case "minus", "negative":
		sign = -1
		words = words[1:]
	}

	if v, ok := parseEnglishDigits(words); ok {
		return sign * v, true
	}

	total, current, seen := 0, 0, false
	add := func(v int) bool {
		// Only "twenty" + "one" or "hundred" + "three" combine, "twenty
		// twenty" is no number.
		switch {
		case current == 0, current%100 == 0:
		case v < 10 && current%100 >= 20 && current%10 == 0:
		default:
			return false
		}
		current += v
		seen = true
		return true
	}

	for i, word := range words {
		if v, ok := englishUnits[word]; ok {
			if !add(v) {
				return 0, false
			}
			continue
		}
		if v, ok := englishScales[word]; ok {
			if !seen {
				return 0, false
			}
			total += max(current, 1) * v
			current = 0
			continue
		}
		switch word {
		case "hundred":
			if current >= 100 {
				return 0, false
			}
			current = max(current, 1) * 100
			seen = true
		case "a":
			if i+1 >= len(words) {
				return 0, false
			}
		case "and":
			if !seen {
				return 0, false
			}
		default:
			if v, err := strconv.Atoi(word); err == nil && v >= 0 && add(v) {
				continue
			}
			return 0, false
		}
	}
	if !seen {
		return 0, false
	}
	return sign * (total + current), true
}

// parseEnglishDigits reads at least two single digit words as digits, like
// "four two" for 42.
func parseEnglishDigits(words []string) (int, bool) {
	if len(words) < 2 {
		return 0, false
	}
	result := 0
	for _, word := range words {
		v, ok := englishUnits[word]
		if !ok || v > 9 {
			return 0, false
		}
		result = result*10 + v
	}
	return result, true
}

func parseChinese(text string) (int, bool) {
	text = strings.Join(strings.Fields(text), "")
	sign := 1
	if rest, found := strings.CutPrefix(text, "负"); found {
		sign = -1
		text = rest
	}
	if text == "" {
		return 0, false
	}

	total, section, number := 0, 0, 0
	lastWasDigit := false
	for _, r := range text {
		if d, ok := chineseDigits[r]; ok {
			if lastWasDigit {
				number = number*10 + d
			} else {
				number = d
			}
			lastWasDigit = true
			continue
		}
		lastWasDigit = false
		if u, ok := chineseUnits[r]; ok {
			if number == 0 && u == 10 {
				number = 1
			}
			section += number * u
			number = 0
			continue
		}
		switch r {
		case '万':
			total += (section + number) * 10_000
		case '亿':
			total = (total + section + number) * 100_000_000
		default:
			return 0, false
		}
		section, number = 0, 0
	}
	return sign * (total + section + number), true
}
