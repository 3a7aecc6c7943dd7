package models

// Station identifies one of the fixed radio station audio assets the
// importer manages.
type Station string

// Stations lists every station in its canonical processing order. The
// set is fixed at build time and never changes for the life of the
// process.
var Stations = []Station{
	"HEAD",
	"CLASS",
	"KJAH",
	"RISE",
	"LIPS",
	"GAME",
	"MSX",
	"FLASH",
	"CHAT",
}

// CanonicalExt is the audio container every station file ends up in.
const CanonicalExt = ".mp3"
