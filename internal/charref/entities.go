// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package charref

// entity is one row of the named character reference table: a payload of
// one or two code points, and whether the trailing ';' is required for a
// legal match. Entries with requireSemicolon == false are the historical
// "legacy" names inherited from HTML4 that browsers must still accept bare.
type entity struct {
	codepoints     []rune
	requireSemicolon bool
}

// namedEntities is a representative subset of the ~2,200 entries the WHATWG
// named character reference table defines: enough to exercise the
// longest-match trie (including the classic "&notin" vs "&not" + "in"
// overlap) and the two-codepoint payload case, without reproducing the
// full table verbatim.
var namedEntities = map[string]entity{
	"amp":     {[]rune{'&'}, false},
	"amp;":    {[]rune{'&'}, true},
	"AMP":     {[]rune{'&'}, false},
	"AMP;":    {[]rune{'&'}, true},
	"lt":      {[]rune{'<'}, false},
	"lt;":     {[]rune{'<'}, true},
	"LT":      {[]rune{'<'}, false},
	"LT;":     {[]rune{'<'}, true},
	"gt":      {[]rune{'>'}, false},
	"gt;":     {[]rune{'>'}, true},
	"GT":      {[]rune{'>'}, false},
	"GT;":     {[]rune{'>'}, true},
	"quot":    {[]rune{'"'}, false},
	"quot;":   {[]rune{'"'}, true},
	"QUOT":    {[]rune{'"'}, false},
	"QUOT;":   {[]rune{'"'}, true},
	"apos;":   {[]rune{'\''}, true},
	"nbsp":    {[]rune{' '}, false},
	"nbsp;":   {[]rune{' '}, true},
	"copy":    {[]rune{'©'}, false},
	"copy;":   {[]rune{'©'}, true},
	"reg":     {[]rune{'®'}, false},
	"reg;":    {[]rune{'®'}, true},
	"trade;":  {[]rune{'™'}, true},
	"hellip;": {[]rune{'…'}, true},
	"mdash;":  {[]rune{'—'}, true},
	"ndash;":  {[]rune{'–'}, true},
	"laquo":   {[]rune{'«'}, false},
	"laquo;":  {[]rune{'«'}, true},
	"raquo":   {[]rune{'»'}, false},
	"raquo;":  {[]rune{'»'}, true},
	"euro;":   {[]rune{'€'}, true},
	"deg":     {[]rune{'°'}, false},
	"deg;":    {[]rune{'°'}, true},
	"plusmn":  {[]rune{'±'}, false},
	"plusmn;": {[]rune{'±'}, true},
	"times":   {[]rune{'×'}, false},
	"times;":  {[]rune{'×'}, true},
	"divide":  {[]rune{'÷'}, false},
	"divide;": {[]rune{'÷'}, true},
	"not":     {[]rune{'¬'}, false},
	"not;":    {[]rune{'¬'}, true},
	"notin;":  {[]rune{'∉'}, true},
	"acE;":    {[]rune{'∾', '̳'}, true},
	"NotEqualTilde;": {[]rune{'≂', '̸'}, true},
	"star;":   {[]rune{'☆'}, true},
	"bull;":   {[]rune{'•'}, true},
	"sect":    {[]rune{'§'}, false},
	"sect;":   {[]rune{'§'}, true},
	"para":    {[]rune{'¶'}, false},
	"para;":   {[]rune{'¶'}, true},
	"middot":  {[]rune{'·'}, false},
	"middot;": {[]rune{'·'}, true},
	"frac12":  {[]rune{'½'}, false},
	"frac12;": {[]rune{'½'}, true},
	"alpha;":  {[]rune{'α'}, true},
	"beta;":   {[]rune{'β'}, true},
	"gamma;":  {[]rune{'γ'}, true},
	"larr;":   {[]rune{'←'}, true},
	"rarr;":   {[]rune{'→'}, true},
	"uarr;":   {[]rune{'↑'}, true},
	"darr;":   {[]rune{'↓'}, true},
	"infin;":  {[]rune{'∞'}, true},
	"ne;":     {[]rune{'≠'}, true},
	"le;":     {[]rune{'≤'}, true},
	"ge;":     {[]rune{'≥'}, true},
}

// maxEntityNameLen bounds the longest-match scan. The longest WHATWG entity
// name ("CounterClockwiseContourIntegral;") is 32 characters, so 33 is a
// safe bound.
const maxEntityNameLen = 33

// windows1252C1 remaps the C1 control byte range (0x80..0x9F) to the
// characters Windows-1252 maps them to: numeric references in this range
// use the browser-compatibility remap rather than the literal C1 control
// code point.
var windows1252C1 = [32]rune{
	0x20AC, 0x0081, 0x201A, 0x0192, 0x201E, 0x2026, 0x2020, 0x2021,
	0x02C6, 0x2030, 0x0160, 0x2039, 0x0152, 0x008D, 0x017D, 0x008F,
	0x0090, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014,
	0x02DC, 0x2122, 0x0161, 0x203A, 0x0153, 0x009D, 0x017E, 0x0178,
}
