package shared

import "math/rand"

// Docker-style placeholder names for freshly created configurations.

var nameAdjectives = []string{
	"admiring", "bold", "brave", "clever", "cool", "dazzling", "eager",
	"elegant", "festive", "gallant", "happy", "jolly", "keen", "lucid",
	"mystic", "nifty", "quirky", "serene", "stoic", "vibrant", "wizardly",
	"zealous",
}

var nameSurnames = []string{
	"allen", "austin", "banach", "bell", "curie", "darwin", "euclid",
	"fermat", "galileo", "hopper", "hypatia", "kepler", "lovelace",
	"mendel", "newton", "noether", "pascal", "sagan", "tesla", "turing",
	"wozniak", "wright",
}

// RandomConfigName returns an adjective_surname pair, e.g. "jolly_turing".
func RandomConfigName() string {
	return nameAdjectives[rand.Intn(len(nameAdjectives))] + "_" +
		nameSurnames[rand.Intn(len(nameSurnames))]
}
