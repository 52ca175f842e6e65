package identity

var maleNames = []string{
	"Alessandro", "Andrea", "Antonio", "Carlo", "Christian", "Claudio", "Daniele", "Davide",
	"Diego", "Domenico", "Edoardo", "Emanuele", "Enrico", "Fabio", "Federico", "Filippo",
	"Francesco", "Gabriele", "Giacomo", "Gianluca", "Giorgio", "Giovanni", "Giulio", "Giuseppe",
	"Leonardo", "Lorenzo", "Luca", "Luigi", "Manuel", "Marco", "Mario", "Matteo",
	"Mattia", "Michele", "Nicola", "Paolo", "Pietro", "Raffaele", "Riccardo", "Roberto",
	"Salvatore", "Samuele", "Simone", "Stefano", "Tommaso", "Valerio", "Vincenzo", "Vittorio",
}

var femaleNames = []string{
	"Alessandra", "Alice", "Angela", "Anna", "Arianna", "Aurora", "Beatrice", "Camilla",
	"Carla", "Caterina", "Chiara", "Cristina", "Daniela", "Elena", "Eleonora", "Elisa",
	"Emma", "Federica", "Francesca", "Gaia", "Giada", "Ginevra", "Giorgia", "Giulia",
	"Ilaria", "Laura", "Lucia", "Ludovica", "Marta", "Martina", "Maria", "Matilde",
	"Monica", "Noemi", "Paola", "Rebecca", "Roberta", "Rosa", "Sara", "Serena",
	"Silvia", "Simona", "Sofia", "Valentina", "Valeria", "Veronica", "Viola", "Vittoria",
}

var familyNames = []string{
	"Rossi", "Russo", "Ferrari", "Esposito", "Bianchi", "Romano", "Colombo", "Ricci",
	"Marino", "Greco", "Bruno", "Gallo", "Conti", "De Luca", "Mancini", "Costa",
	"Giordano", "Rizzo", "Lombardi", "Moretti", "Barbieri", "Fontana", "Santoro", "Mariani",
	"Rinaldi", "Caruso", "Ferrara", "Galli", "Martini", "Leone", "Longo", "Gentile",
	"Martinelli", "Vitale", "Lombardo", "Serra", "Coppola", "De Santis", "D'Angelo", "Marchetti",
	"Parisi", "Villa", "Conte", "Ferraro", "Ferri", "Fabbri", "Bianco", "Marini",
	"Grasso", "Valentini", "Messina", "Sala", "De Angelis", "Gatti", "Pellegrini", "Palumbo",
	"Sanna", "Farina", "Rizzi", "Monti", "Cattaneo", "Morelli", "Amato", "Silvestri",
	"Mazza", "Testa", "Grassi", "Pellegrino", "Carbone", "Giuliani", "Benedetti", "Barone",
	"Rossetti", "Caputo", "Montanari", "Guerra", "Palmieri", "Bernardi", "Martino", "Fiore",
	"De Rosa", "Ferretti", "Bellini", "Basile", "Riva", "Donati", "Piras", "Vitali",
	"Battaglia", "Sartori", "Neri", "Costantini", "Milani", "Pagano", "Ruggiero", "Sorrentino",
	"Fo", "Re", "Iorio", "Lo",
}
