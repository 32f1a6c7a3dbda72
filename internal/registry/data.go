package registry

import "github.com/skyquery/flightlookup/internal/types"

// Static reference data compiled into the binary. These tables cover the
// major carriers and hubs the engine is expected to see; anything outside
// them degrades to heuristics, never to an error.

var airlines = []types.Airline{
	{IATA: "AI", ICAO: "AIC", Name: "Air India", Country: "India"},
	{IATA: "6E", ICAO: "IGO", Name: "IndiGo", Country: "India"},
	{IATA: "UK", ICAO: "VTI", Name: "Vistara", Country: "India"},
	{IATA: "SG", ICAO: "SEJ", Name: "SpiceJet", Country: "India"},
	{IATA: "EK", ICAO: "UAE", Name: "Emirates", Country: "United Arab Emirates"},
	{IATA: "QR", ICAO: "QTR", Name: "Qatar Airways", Country: "Qatar"},
	{IATA: "EY", ICAO: "ETD", Name: "Etihad Airways", Country: "United Arab Emirates"},
	{IATA: "BA", ICAO: "BAW", Name: "British Airways", Country: "United Kingdom"},
	{IATA: "LH", ICAO: "DLH", Name: "Lufthansa", Country: "Germany"},
	{IATA: "AF", ICAO: "AFR", Name: "Air France", Country: "France"},
	{IATA: "KL", ICAO: "KLM", Name: "KLM Royal Dutch Airlines", Country: "Netherlands"},
	{IATA: "SQ", ICAO: "SIA", Name: "Singapore Airlines", Country: "Singapore"},
	{IATA: "CX", ICAO: "CPA", Name: "Cathay Pacific", Country: "Hong Kong"},
	{IATA: "AA", ICAO: "AAL", Name: "American Airlines", Country: "United States"},
	{IATA: "UA", ICAO: "UAL", Name: "United Airlines", Country: "United States"},
	{IATA: "DL", ICAO: "DAL", Name: "Delta Air Lines", Country: "United States"},
	{IATA: "AC", ICAO: "ACA", Name: "Air Canada", Country: "Canada"},
	{IATA: "QF", ICAO: "QFA", Name: "Qantas", Country: "Australia"},
	{IATA: "TK", ICAO: "THY", Name: "Turkish Airlines", Country: "Turkey"},
	{IATA: "NH", ICAO: "ANA", Name: "All Nippon Airways", Country: "Japan"},
}

var airports = []types.Airport{
	{IATA: "DEL", ICAO: "VIDP", Name: "Indira Gandhi International Airport", City: "New Delhi", Country: "India", Lat: 28.5562, Lon: 77.1000},
	{IATA: "BOM", ICAO: "VABB", Name: "Chhatrapati Shivaji Maharaj International Airport", City: "Mumbai", Country: "India", Lat: 19.0887, Lon: 72.8679},
	{IATA: "BLR", ICAO: "VOBL", Name: "Kempegowda International Airport", City: "Bengaluru", Country: "India", Lat: 13.1986, Lon: 77.7066},
	{IATA: "MAA", ICAO: "VOMM", Name: "Chennai International Airport", City: "Chennai", Country: "India", Lat: 12.9941, Lon: 80.1709},
	{IATA: "HYD", ICAO: "VOHS", Name: "Rajiv Gandhi International Airport", City: "Hyderabad", Country: "India", Lat: 17.2403, Lon: 78.4294},
	{IATA: "CCU", ICAO: "VECC", Name: "Netaji Subhas Chandra Bose International Airport", City: "Kolkata", Country: "India", Lat: 22.6547, Lon: 88.4467},
	{IATA: "DXB", ICAO: "OMDB", Name: "Dubai International Airport", City: "Dubai", Country: "United Arab Emirates", Lat: 25.2532, Lon: 55.3657},
	{IATA: "DOH", ICAO: "OTHH", Name: "Hamad International Airport", City: "Doha", Country: "Qatar", Lat: 25.2731, Lon: 51.6081},
	{IATA: "AUH", ICAO: "OMAA", Name: "Zayed International Airport", City: "Abu Dhabi", Country: "United Arab Emirates", Lat: 24.4330, Lon: 54.6511},
	{IATA: "LHR", ICAO: "EGLL", Name: "London Heathrow Airport", City: "London", Country: "United Kingdom", Lat: 51.4700, Lon: -0.4543},
	{IATA: "FRA", ICAO: "EDDF", Name: "Frankfurt Airport", City: "Frankfurt", Country: "Germany", Lat: 50.0379, Lon: 8.5622},
	{IATA: "CDG", ICAO: "LFPG", Name: "Charles de Gaulle Airport", City: "Paris", Country: "France", Lat: 49.0097, Lon: 2.5479},
	{IATA: "AMS", ICAO: "EHAM", Name: "Amsterdam Airport Schiphol", City: "Amsterdam", Country: "Netherlands", Lat: 52.3105, Lon: 4.7683},
	{IATA: "SIN", ICAO: "WSSS", Name: "Singapore Changi Airport", City: "Singapore", Country: "Singapore", Lat: 1.3644, Lon: 103.9915},
	{IATA: "HKG", ICAO: "VHHH", Name: "Hong Kong International Airport", City: "Hong Kong", Country: "Hong Kong", Lat: 22.3080, Lon: 113.9185},
	{IATA: "JFK", ICAO: "KJFK", Name: "John F. Kennedy International Airport", City: "New York", Country: "United States", Lat: 40.6413, Lon: -73.7781},
	{IATA: "ORD", ICAO: "KORD", Name: "O'Hare International Airport", City: "Chicago", Country: "United States", Lat: 41.9742, Lon: -87.9073},
	{IATA: "LAX", ICAO: "KLAX", Name: "Los Angeles International Airport", City: "Los Angeles", Country: "United States", Lat: 33.9416, Lon: -118.4085},
	{IATA: "YYZ", ICAO: "CYYZ", Name: "Toronto Pearson International Airport", City: "Toronto", Country: "Canada", Lat: 43.6777, Lon: -79.6248},
	{IATA: "SYD", ICAO: "YSSY", Name: "Sydney Kingsford Smith Airport", City: "Sydney", Country: "Australia", Lat: -33.9399, Lon: 151.1753},
	{IATA: "IST", ICAO: "LTFM", Name: "Istanbul Airport", City: "Istanbul", Country: "Turkey", Lat: 41.2753, Lon: 28.7519},
	{IATA: "HND", ICAO: "RJTT", Name: "Tokyo Haneda Airport", City: "Tokyo", Country: "Japan", Lat: 35.5494, Lon: 139.7798},
}

var aircraftTypes = []types.Aircraft{
	{Code: "A320", Name: "Airbus A320", Manufacturer: "Airbus", Category: "narrow-body"},
	{Code: "A20N", Name: "Airbus A320neo", Manufacturer: "Airbus", Category: "narrow-body"},
	{Code: "A321", Name: "Airbus A321", Manufacturer: "Airbus", Category: "narrow-body"},
	{Code: "B738", Name: "Boeing 737-800", Manufacturer: "Boeing", Category: "narrow-body"},
	{Code: "B38M", Name: "Boeing 737 MAX 8", Manufacturer: "Boeing", Category: "narrow-body"},
	{Code: "A333", Name: "Airbus A330-300", Manufacturer: "Airbus", Category: "wide-body"},
	{Code: "A359", Name: "Airbus A350-900", Manufacturer: "Airbus", Category: "wide-body"},
	{Code: "A388", Name: "Airbus A380-800", Manufacturer: "Airbus", Category: "wide-body"},
	{Code: "B77W", Name: "Boeing 777-300ER", Manufacturer: "Boeing", Category: "wide-body"},
	{Code: "B788", Name: "Boeing 787-8 Dreamliner", Manufacturer: "Boeing", Category: "wide-body"},
	{Code: "B789", Name: "Boeing 787-9 Dreamliner", Manufacturer: "Boeing", Category: "wide-body"},
	{Code: "AT76", Name: "ATR 72-600", Manufacturer: "ATR", Category: "regional"},
}

// Carrier fleet leanings used when telemetry carries no aircraft type.
// This is a guess about what a carrier typically flies, not data about
// the actual airframe; records built from it are flagged as estimated.
var typicalAircraft = map[string]string{
	"AI": "B788",
	"6E": "A20N",
	"UK": "A320",
	"SG": "B738",
	"EK": "A388",
	"QR": "B77W",
	"EY": "B789",
	"BA": "B77W",
	"LH": "A359",
	"AF": "B77W",
	"KL": "B789",
	"SQ": "A359",
	"CX": "A359",
	"AA": "B738",
	"UA": "B738",
	"DL": "A321",
	"AC": "B38M",
	"QF": "B789",
	"TK": "A333",
	"NH": "B789",
}

// Carriers whose networks are predominantly long-haul. Used as the
// wide-body default when no typical type is tabulated.
var longHaulCarriers = map[string]bool{
	"EK": true, "QR": true, "EY": true, "SQ": true, "CX": true,
	"BA": true, "LH": true, "AF": true, "KL": true, "QF": true,
	"TK": true, "NH": true,
}

// A manually curated table of each carrier's most flown city pairs.
// Inherently incomplete: route estimates built from it are provisional.
var routes = []types.Route{
	{Carrier: "AI", From: "DEL", To: "BOM", Frequency: 9},
	{Carrier: "AI", From: "DEL", To: "LHR", Frequency: 6},
	{Carrier: "AI", From: "BOM", To: "JFK", Frequency: 4},
	{Carrier: "6E", From: "DEL", To: "BLR", Frequency: 9},
	{Carrier: "6E", From: "BOM", To: "HYD", Frequency: 7},
	{Carrier: "UK", From: "DEL", To: "BOM", Frequency: 8},
	{Carrier: "SG", From: "DEL", To: "CCU", Frequency: 6},
	{Carrier: "EK", From: "DXB", To: "LHR", Frequency: 9},
	{Carrier: "EK", From: "DXB", To: "BOM", Frequency: 7},
	{Carrier: "QR", From: "DOH", To: "LHR", Frequency: 8},
	{Carrier: "EY", From: "AUH", To: "DEL", Frequency: 6},
	{Carrier: "BA", From: "LHR", To: "JFK", Frequency: 9},
	{Carrier: "LH", From: "FRA", To: "JFK", Frequency: 8},
	{Carrier: "AF", From: "CDG", To: "JFK", Frequency: 8},
	{Carrier: "KL", From: "AMS", To: "JFK", Frequency: 7},
	{Carrier: "SQ", From: "SIN", To: "LHR", Frequency: 8},
	{Carrier: "CX", From: "HKG", To: "LHR", Frequency: 7},
	{Carrier: "AA", From: "JFK", To: "LAX", Frequency: 9},
	{Carrier: "UA", From: "ORD", To: "LAX", Frequency: 8},
	{Carrier: "DL", From: "JFK", To: "LAX", Frequency: 8},
	{Carrier: "AC", From: "YYZ", To: "LHR", Frequency: 7},
	{Carrier: "QF", From: "SYD", To: "SIN", Frequency: 7},
	{Carrier: "TK", From: "IST", To: "LHR", Frequency: 7},
	{Carrier: "NH", From: "HND", To: "SIN", Frequency: 6},
}
