package rules

// MaxItems caps item lists produced from one document
const MaxItems = 20

// MaxItemLabel caps the length (in runes) of one quantity label
const MaxItemLabel = 80

// ItemCatalog maps system names to canonical labels
var ItemCatalog = Table[string]{
	rule(`(?i)\bATACMS\b`, "ATACMS long-range missiles"),
	rule(`(?i)\bHIMARS\b`, "HIMARS rockets/launchers"),
	rule(`(?i)\bGMLRS\b`, "GMLRS rockets"),
	rule(`(?i)\bNASAMS?\b`, "NASAMS air-defense"),
	rule(`(?i)\bPatriot\b`, "Patriot air-defense"),
	rule(`(?i)\bAIM[-\s]?9\w*\b`, "AIM-9 missiles"),
	rule(`(?i)\bAMRAAM\b|\bAIM[-\s]?120\b`, "AMRAAM missiles"),
	rule(`(?i)\bF[-\s]?16\b`, "F-16 support"),
	rule(`(?i)\bLeopard\b`, "Leopard tanks"),
	rule(`(?i)\bAbrams\b|\bBradley\b|\bStryker\b|\bM113\b|\bCV90\b`, "Armored vehicles"),
	rule(`(?i)\b(155|152|122|120|105)\s?mm\b`, "Artillery/mortar ammo"),
	rule(`(?i)\bSwitchblade\b|\bPhoenix\s+Ghost\b`, "Loitering munitions"),
	rule(`(?i)\bStorm\s+Shadow\b|\bSCALP\b`, "Cruise missiles"),
	rule(`(?i)\bStinger\b|\bJavelin\b|\bNLAW\b`, "AT/AA missiles"),
	rule(`(?i)night\s*vision|helmet|vest|generator|ambulance`, "Non-lethal equipment"),
	rule(`(?i)demin|clearance`, "Demining equipment"),
	rule(`(?i)\bPT[-\s]?91\b`, "PT-91 tanks"),
	rule(`(?i)\bT[-\s]?72\b`, "T-72 tanks"),
	rule(`(?i)\bMi[-\s]?24\b`, "Mi-24 attack helicopters"),
	rule(`(?i)\bPiorun\b`, "Piorun MANPADS"),
	rule(`(?i)\bZU[-\s]?23[-\s]?2\b`, "ZU-23-2 autocannons"),
	rule(`(?i)\bFlyEye\b`, "FlyEye UAVs"),
	rule(`(?i)\bS[-\s]?60\b`, "S-60 AA guns"),
	rule(`(?i)\bLMP[-\s]?2017\b`, "LMP-2017 mortars"),
}

// ItemNouns are generic nouns that may sit between a quantity and a name
const ItemNouns = `(?:units?|systems?|vehicles?|tanks?|ifvs?|apcs?|mbts?|howitzers?|guns?|launchers?|batteries|battery|missiles?|rockets?|rounds?|shells?|cartridges?|grenades?|mines?|drones?|uavs?|aircraft|helicopters?|rifles?|trucks?|radars?)`

// AmmoNouns are nouns that get bound to a caliber mentioned elsewhere
const AmmoNouns = `(?:rounds?|shells?|cartridges?|projectiles?)`

// Caliber matches a caliber expression such as "155mm" or "155 mm"
const Caliber = `\b(\d{2,4})\s?mm\b`
