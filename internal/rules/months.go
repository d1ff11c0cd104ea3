package rules

import (
	"sort"
	"strings"
	"sync"
)

// MinEvidenceYear and MaxEvidenceYear bound accepted evidence dates
const (
	MinEvidenceYear = 2022
	MaxEvidenceYear = 2026
)

// monthNames lists month names per language, January first. Full names,
// inflected forms and common abbreviations share a slot.
var monthNames = map[string][12][]string{
	"en": {{"january", "jan"}, {"february", "feb"}, {"march", "mar"}, {"april", "apr"}, {"may"}, {"june", "jun"},
		{"july", "jul"}, {"august", "aug"}, {"september", "sept", "sep"}, {"october", "oct"}, {"november", "nov"}, {"december", "dec"}},
	"de": {{"januar", "jänner", "jan"}, {"februar", "feb"}, {"märz", "maerz", "mär"}, {"april", "apr"}, {"mai"}, {"juni"},
		{"juli"}, {"august", "aug"}, {"september", "sept", "sep"}, {"oktober", "okt"}, {"november", "nov"}, {"dezember", "dez"}},
	"fr": {{"janvier", "janv"}, {"février", "févr"}, {"mars"}, {"avril", "avr"}, {"mai"}, {"juin"},
		{"juillet", "juil"}, {"août"}, {"septembre", "sept"}, {"octobre", "oct"}, {"novembre", "nov"}, {"décembre", "déc"}},
	"it": {{"gennaio", "gen"}, {"febbraio", "feb"}, {"marzo", "mar"}, {"aprile", "apr"}, {"maggio", "mag"}, {"giugno", "giu"},
		{"luglio", "lug"}, {"agosto", "ago"}, {"settembre", "set"}, {"ottobre", "ott"}, {"novembre", "nov"}, {"dicembre", "dic"}},
	"es": {{"enero", "ene"}, {"febrero", "feb"}, {"marzo", "mar"}, {"abril", "abr"}, {"mayo", "may"}, {"junio", "jun"},
		{"julio", "jul"}, {"agosto", "ago"}, {"septiembre", "setiembre", "sep"}, {"octubre", "oct"}, {"noviembre", "nov"}, {"diciembre", "dic"}},
	"pt": {{"janeiro", "jan"}, {"fevereiro", "fev"}, {"março", "mar"}, {"abril", "abr"}, {"maio", "mai"}, {"junho", "jun"},
		{"julho", "jul"}, {"agosto", "ago"}, {"setembro", "set"}, {"outubro", "out"}, {"novembro", "nov"}, {"dezembro", "dez"}},
	"nl": {{"januari", "jan"}, {"februari", "feb"}, {"maart", "mrt"}, {"april", "apr"}, {"mei"}, {"juni"},
		{"juli"}, {"augustus", "aug"}, {"september", "sep"}, {"oktober", "okt"}, {"november", "nov"}, {"december", "dec"}},
	"pl": {{"styczeń", "stycznia", "styczniu"}, {"luty", "lutego", "lutym"}, {"marzec", "marca", "marcu"}, {"kwiecień", "kwietnia", "kwietniu"},
		{"maj", "maja", "maju"}, {"czerwiec", "czerwca", "czerwcu"}, {"lipiec", "lipca", "lipcu"}, {"sierpień", "sierpnia", "sierpniu"},
		{"wrzesień", "września", "wrześniu"}, {"październik", "października", "październiku"}, {"listopad", "listopada", "listopadzie"},
		{"grudzień", "grudnia", "grudniu"}},
	"cs": {{"leden", "ledna"}, {"únor", "února"}, {"březen", "března"}, {"duben", "dubna"}, {"květen", "května"}, {"červen", "června"},
		{"červenec", "července"}, {"srpen", "srpna"}, {"září"}, {"říjen", "října"}, {"listopad", "listopadu"}, {"prosinec", "prosince"}},
	"sk": {{"január", "januára"}, {"február", "februára"}, {"marec", "marca"}, {"apríl", "apríla"}, {"máj", "mája"}, {"jún", "júna"},
		{"júl", "júla"}, {"august", "augusta"}, {"september", "septembra"}, {"október", "októbra"}, {"november", "novembra"}, {"december", "decembra"}},
	"hu": {{"január"}, {"február"}, {"március"}, {"április"}, {"május"}, {"június"},
		{"július"}, {"augusztus"}, {"szeptember"}, {"október"}, {"november"}, {"december"}},
	"ro": {{"ianuarie"}, {"februarie"}, {"martie"}, {"aprilie"}, {"mai"}, {"iunie"},
		{"iulie"}, {"august"}, {"septembrie"}, {"octombrie"}, {"noiembrie"}, {"decembrie"}},
	"bg": {{"януари"}, {"февруари"}, {"март"}, {"април"}, {"май"}, {"юни"},
		{"юли"}, {"август"}, {"септември"}, {"октомври"}, {"ноември"}, {"декември"}},
	"sl": {{"januar", "januarja"}, {"februar", "februarja"}, {"marec", "marca"}, {"april", "aprila"}, {"maj", "maja"}, {"junij", "junija"},
		{"julij", "julija"}, {"avgust", "avgusta"}, {"september", "septembra"}, {"oktober", "oktobra"}, {"november", "novembra"}, {"december", "decembra"}},
	"hr": {{"siječanj", "siječnja"}, {"veljača", "veljače"}, {"ožujak", "ožujka"}, {"travanj", "travnja"}, {"svibanj", "svibnja"}, {"lipanj", "lipnja"},
		{"srpanj", "srpnja"}, {"kolovoz", "kolovoza"}, {"rujan", "rujna"}, {"listopad", "listopada"}, {"studeni", "studenoga"}, {"prosinac", "prosinca"}},
	"et": {{"jaanuar", "jaanuaril"}, {"veebruar", "veebruaril"}, {"märts", "märtsil"}, {"aprill", "aprillil"}, {"mai", "mail"}, {"juuni", "juunil"},
		{"juuli", "juulil"}, {"august", "augustil"}, {"september", "septembril"}, {"oktoober", "oktoobril"}, {"november", "novembril"}, {"detsember", "detsembril"}},
	"lv": {{"janvāris", "janvārī"}, {"februāris", "februārī"}, {"marts", "martā"}, {"aprīlis", "aprīlī"}, {"maijs", "maijā"}, {"jūnijs", "jūnijā"},
		{"jūlijs", "jūlijā"}, {"augusts", "augustā"}, {"septembris", "septembrī"}, {"oktobris", "oktobrī"}, {"novembris", "novembrī"}, {"decembris", "decembrī"}},
	"lt": {{"sausis", "sausio"}, {"vasaris", "vasario"}, {"kovas", "kovo"}, {"balandis", "balandžio"}, {"gegužė", "gegužės"}, {"birželis", "birželio"},
		{"liepa", "liepos"}, {"rugpjūtis", "rugpjūčio"}, {"rugsėjis", "rugsėjo"}, {"spalis", "spalio"}, {"lapkritis", "lapkričio"}, {"gruodis", "gruodžio"}},
	"fi": {{"tammikuu", "tammikuuta"}, {"helmikuu", "helmikuuta"}, {"maaliskuu", "maaliskuuta"}, {"huhtikuu", "huhtikuuta"}, {"toukokuu", "toukokuuta"}, {"kesäkuu", "kesäkuuta"},
		{"heinäkuu", "heinäkuuta"}, {"elokuu", "elokuuta"}, {"syyskuu", "syyskuuta"}, {"lokakuu", "lokakuuta"}, {"marraskuu", "marraskuuta"}, {"joulukuu", "joulukuuta"}},
	"sv": {{"januari", "jan"}, {"februari", "feb"}, {"mars"}, {"april", "apr"}, {"maj"}, {"juni"},
		{"juli"}, {"augusti", "aug"}, {"september", "sep"}, {"oktober", "okt"}, {"november", "nov"}, {"december", "dec"}},
	"da": {{"januar", "jan"}, {"februar", "feb"}, {"marts"}, {"april", "apr"}, {"maj"}, {"juni"},
		{"juli"}, {"august", "aug"}, {"september", "sep"}, {"oktober", "okt"}, {"november", "nov"}, {"december", "dec"}},
	"no": {{"januar", "jan"}, {"februar", "feb"}, {"mars"}, {"april", "apr"}, {"mai"}, {"juni"},
		{"juli"}, {"august", "aug"}, {"september", "sep"}, {"oktober", "okt"}, {"november", "nov"}, {"desember", "des"}},
	"el": {{"ιανουάριος", "ιανουαρίου"}, {"φεβρουάριος", "φεβρουαρίου"}, {"μάρτιος", "μαρτίου"}, {"απρίλιος", "απριλίου"}, {"μάιος", "μαΐου"}, {"ιούνιος", "ιουνίου"},
		{"ιούλιος", "ιουλίου"}, {"αύγουστος", "αυγούστου"}, {"σεπτέμβριος", "σεπτεμβρίου"}, {"οκτώβριος", "οκτωβρίου"}, {"νοέμβριος", "νοεμβρίου"}, {"δεκέμβριος", "δεκεμβρίου"}},
	"tr": {{"ocak"}, {"şubat"}, {"mart"}, {"nisan"}, {"mayıs"}, {"haziran"},
		{"temmuz"}, {"ağustos"}, {"eylül"}, {"ekim"}, {"kasım"}, {"aralık"}},
}

// MonthName is one folded month spelling and its month number
type MonthName struct {
	Name  string
	Month int
}

var (
	monthOnce  sync.Once
	monthIndex map[string][]MonthName
)

// MonthNames returns the folded month spellings for the given languages,
// longest first so alternations prefer full names over abbreviations.
// Unknown languages contribute nothing.
func MonthNames(langs ...string) []MonthName {
	monthOnce.Do(buildMonthIndex)
	seen := make(map[string]bool)
	var out []MonthName
	for _, lang := range langs {
		for _, mn := range monthIndex[lang] {
			if seen[mn.Name] {
				continue
			}
			seen[mn.Name] = true
			out = append(out, mn)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len([]rune(out[i].Name)) > len([]rune(out[j].Name))
	})
	return out
}

// LeadingMonth reports whether s starts with an English month word
func LeadingMonth(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	word := strings.ToLower(fields[0])
	for _, mn := range MonthNames(DefaultLanguage) {
		if word == mn.Name {
			return true
		}
	}
	return false
}

func buildMonthIndex() {
	monthIndex = make(map[string][]MonthName, len(monthNames))
	for lang, months := range monthNames {
		for i, names := range months {
			for _, name := range names {
				monthIndex[lang] = append(monthIndex[lang], MonthName{Name: Fold(name), Month: i + 1})
			}
		}
	}
}
