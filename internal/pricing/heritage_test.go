package pricing

import "testing"

func TestHeritageScoreKeywordClasses(t *testing.T) {
	cases := []struct {
		name  string
		attrs NarrativeAttributes
		want  float64
	}{
		{
			name:  "no signals",
			attrs: NarrativeAttributes{NarrativeText: "a plain bowl"},
			want:  0,
		},
		{
			name:  "religious keyword only",
			attrs: NarrativeAttributes{NarrativeText: "a diya for the temple"},
			want:  3,
		},
		{
			name:  "rare technique only",
			attrs: NarrativeAttributes{NarrativeText: "painted in the madhubani style"},
			want:  4,
		},
		{
			name:  "heritage region only",
			attrs: NarrativeAttributes{Region: "Rajasthan", NarrativeText: "a plain bowl"},
			want:  2,
		},
		{
			name:  "traditional language only",
			attrs: NarrativeAttributes{NarrativeText: "made the traditional way"},
			want:  1,
		},
		{
			// 3 (lotus/peacock) + 2 (region) + 1 (traditional) = 6
			name: "motifs region and lineage",
			attrs: NarrativeAttributes{
				Region:        "Rajasthan",
				NarrativeText: "peacock and lotus motifs from Jaipur, traditional craft",
			},
			want: 6,
		},
		{
			// 3 + 4 + 2 + 1 = 10, capped
			name: "all classes capped at ten",
			attrs: NarrativeAttributes{
				Region:        "Kutch, Gujarat",
				NarrativeText: "warli festival scenes passed down through generational tradition",
			},
			want: 10,
		},
	}
	for _, tc := range cases {
		if got := HeritageScore(tc.attrs); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestHeritageScoreCaseInsensitive(t *testing.T) {
	a := NarrativeAttributes{Region: "RAJASTHAN", NarrativeText: "DIWALI lamps"}
	b := NarrativeAttributes{Region: "rajasthan", NarrativeText: "diwali lamps"}
	if HeritageScore(a) != HeritageScore(b) {
		t.Fatal("scoring must be case-insensitive")
	}
}

func TestHeritageScoreUsesStoryTitle(t *testing.T) {
	attrs := NarrativeAttributes{StoryTitle: "The Temple Bell"}
	if got := HeritageScore(attrs); got != 3 {
		t.Fatalf("story title should be scanned, got %v", got)
	}
}
