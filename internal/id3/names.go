package id3

// FrameNames maps ID3v2.3/2.4 frame ids to their descriptions.
var FrameNames = map[string]string{
	"AENC": "Audio encryption",
	"APIC": "Attached picture",
	"ASPI": "Audio seek point index",
	"COMM": "Comments",
	"COMR": "Commercial frame",
	"ENCR": "Encryption method registration",
	"EQU2": "Equalisation (2)",
	"EQUA": "Equalization",
	"ETCO": "Event timing codes",
	"GEOB": "General encapsulated object",
	"GRID": "Group identification registration",
	"IPLS": "Involved people list",
	"LINK": "Linked information",
	"MCDI": "Music CD identifier",
	"MLLT": "MPEG location lookup table",
	"OWNE": "Ownership frame",
	"PCNT": "Play counter",
	"POPM": "Popularimeter",
	"POSS": "Position synchronisation frame",
	"PRIV": "Private frame",
	"RBUF": "Recommended buffer size",
	"RVA2": "Relative volume adjustment (2)",
	"RVAD": "Relative volume adjustment",
	"RVRB": "Reverb",
	"SEEK": "Seek frame",
	"SIGN": "Signature frame",
	"SYLT": "Synchronised lyric/text",
	"SYTC": "Synchronised tempo codes",
	"TALB": "Album/Movie/Show title",
	"TBPM": "BPM (beats per minute)",
	"TCMP": "iTunes compilation flag",
	"TCOM": "Composer",
	"TCON": "Content type",
	"TCOP": "Copyright message",
	"TDAT": "Date",
	"TDEN": "Encoding time",
	"TDLY": "Playlist delay",
	"TDOR": "Original release time",
	"TDRC": "Recording time",
	"TDRL": "Release time",
	"TDTG": "Tagging time",
	"TENC": "Encoded by",
	"TEXT": "Lyricist/Text writer",
	"TFLT": "File type",
	"TIME": "Time",
	"TIPL": "Involved people list",
	"TIT1": "Content group description",
	"TIT2": "Title/songname/content description",
	"TIT3": "Subtitle/Description refinement",
	"TKEY": "Initial key",
	"TLAN": "Language(s)",
	"TLEN": "Length",
	"TMCL": "Musician credits list",
	"TMED": "Media type",
	"TMOO": "Mood",
	"TOAL": "Original album/movie/show title",
	"TOFN": "Original filename",
	"TOLY": "Original lyricist(s)/text writer(s)",
	"TOPE": "Original artist(s)/performer(s)",
	"TORY": "Original release year",
	"TOWN": "File owner/licensee",
	"TPE1": "Lead performer(s)/Soloist(s)",
	"TPE2": "Band/orchestra/accompaniment",
	"TPE3": "Conductor/performer refinement",
	"TPE4": "Interpreted, remixed, or otherwise modified by",
	"TPOS": "Part of a set",
	"TPRO": "Produced notice",
	"TPUB": "Publisher",
	"TRCK": "Track number/Position in set",
	"TRDA": "Recording dates",
	"TRSN": "Internet radio station name",
	"TRSO": "Internet radio station owner",
	"TSIZ": "Size",
	"TSO2": "iTunes album artist sort order",
	"TSOA": "Album sort order",
	"TSOC": "iTunes composer sort order",
	"TSOP": "Performer sort order",
	"TSOT": "Title sort order",
	"TSRC": "ISRC (international standard recording code)",
	"TSSE": "Software/Hardware and settings used for encoding",
	"TSST": "Set subtitle",
	"TXXX": "User defined text information frame",
	"TYER": "Year",
	"UFID": "Unique file identifier",
	"USER": "Terms of use",
	"USLT": "Unsynchronised lyric/text transcription",
	"WCOM": "Commercial information",
	"WCOP": "Copyright/Legal information",
	"WOAF": "Official audio file webpage",
	"WOAR": "Official artist/performer webpage",
	"WOAS": "Official audio source webpage",
	"WORS": "Official Internet radio station homepage",
	"WPAY": "Payment",
	"WPUB": "Publishers official webpage",
	"WXXX": "User defined URL link frame",
}

// v22IDs maps ID3v2.2 frame ids to their ID3v2.3 equivalents.
var v22IDs = map[string]string{
	"BUF": "RBUF", "CNT": "PCNT", "COM": "COMM", "CRA": "AENC",
	"ETC": "ETCO", "EQU": "EQUA", "GEO": "GEOB", "IPL": "IPLS",
	"LNK": "LINK", "MCI": "MCDI", "MLL": "MLLT", "PIC": "APIC",
	"POP": "POPM", "REV": "RVRB", "RVA": "RVAD", "SLT": "SYLT",
	"STC": "SYTC", "TAL": "TALB", "TBP": "TBPM", "TCM": "TCOM",
	"TCO": "TCON", "TCR": "TCOP", "TDA": "TDAT", "TDY": "TDLY",
	"TEN": "TENC", "TFT": "TFLT", "TIM": "TIME", "TKE": "TKEY",
	"TLA": "TLAN", "TLE": "TLEN", "TMT": "TMED", "TOA": "TOPE",
	"TOF": "TOFN", "TOL": "TOLY", "TOR": "TORY", "TOT": "TOAL",
	"TP1": "TPE1", "TP2": "TPE2", "TP3": "TPE3", "TP4": "TPE4",
	"TPA": "TPOS", "TPB": "TPUB", "TRC": "TSRC", "TRD": "TRDA",
	"TRK": "TRCK", "TSI": "TSIZ", "TSS": "TSSE", "TT1": "TIT1",
	"TT2": "TIT2", "TT3": "TIT3", "TXT": "TEXT", "TXX": "TXXX",
	"TYE": "TYER", "UFI": "UFID", "ULT": "USLT", "WAF": "WOAF",
	"WAR": "WOAR", "WAS": "WOAS", "WCM": "WCOM", "WCP": "WCOP",
	"WPB": "WPUB", "WXX": "WXXX",
	// iTunes extensions
	"TCP": "TCMP", "TS2": "TSO2", "TSA": "TSOA", "TSC": "TSOC",
	"TSP": "TSOP", "TST": "TSOT",
}

// v24Only lists frames introduced by ID3v2.4. They cannot be written in an
// ID3v2.3 tag.
var v24Only = map[string]bool{
	"ASPI": true, "EQU2": true, "RVA2": true, "SEEK": true, "SIGN": true,
	"TDEN": true, "TDOR": true, "TDRC": true, "TDRL": true, "TDTG": true,
	"TIPL": true, "TMCL": true, "TMOO": true, "TPRO": true, "TSST": true,
}

// v23Only lists frames removed by ID3v2.4. They cannot be written in an
// ID3v2.4 tag.
var v23Only = map[string]bool{
	"EQUA": true, "IPLS": true, "RVAD": true, "TDAT": true, "TIME": true,
	"TORY": true, "TRDA": true, "TSIZ": true, "TYER": true,
}

// validFrameID reports whether id consists of n characters from A-Z and 0-9.
func validFrameID(id string, n int) bool {
	if len(id) != n {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// WritableIn reports whether a frame with the given id has a representation
// in version v.
func WritableIn(id string, v Version) bool {
	if !validFrameID(id, 4) {
		return false
	}
	switch {
	case v.Is(V2_3):
		return !v24Only[id]
	case v.Is(V2_4):
		return !v23Only[id]
	}
	return false
}
