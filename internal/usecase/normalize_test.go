package usecase

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Mike Trout", want: "mike trout"},
		{name: "whitespace collapsed", in: "  Mike   Trout  ", want: "mike trout"},
		{name: "diacritics stripped", in: "José Ramírez", want: "jose ramirez"},
		{name: "generational suffix", in: "Ronald Acuña Jr.", want: "ronald acuna"},
		{name: "roman numeral suffix", in: "Luis Garcia III", want: "luis garcia"},
		{name: "leading the", in: "The Big Hurt", want: "big hurt"},
		{name: "punctuation", in: "J.T. Realmuto", want: "jt realmuto"},
		{name: "apostrophe", in: "Logan O'Hoppe", want: "logan ohoppe"},
		{name: "suffix only is kept", in: "Jr", want: "jr"},
		{name: "empty", in: "   ", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeName(tc.in); got != tc.want {
				t.Fatalf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
