package domain

// Card is one major arcana entry the cards screen can reveal.
type Card struct {
	Name        string
	Meaning     string
	Description string
}

var deck = []Card{
	{
		Name:        "O Louco",
		Meaning:     "Novos começos, aventura, potencial ilimitado",
		Description: "O Louco representa o início de uma jornada espiritual. É o momento de confiar no universo e dar o primeiro passo em direção aos seus sonhos.",
	},
	{
		Name:        "A Imperatriz",
		Meaning:     "Feminilidade, criatividade, abundância",
		Description: "A Imperatriz simboliza a energia feminina criativa. É um momento de fertilidade em todos os aspectos da vida, seja material ou espiritual.",
	},
	{
		Name:        "A Estrela",
		Meaning:     "Esperança, inspiração, orientação espiritual",
		Description: "A Estrela é um sinal de esperança e renovação. Ela indica que você está no caminho certo e que o universo está conspirando a seu favor.",
	},
	{
		Name:        "O Sol",
		Meaning:     "Alegria, sucesso, vitalidade",
		Description: "O Sol representa alegria pura e sucesso. É um período de iluminação onde tudo se torna claro e positivo em sua vida.",
	},
	{
		Name:        "A Lua",
		Meaning:     "Intuição, ilusão, ciclos",
		Description: "A Lua representa o mundo dos sonhos e da intuição. Confie em seus instintos e esteja atenta aos sinais que o universo está enviando.",
	},
}

// Deck returns a copy of the cards that can be drawn.
func Deck() []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	return out
}

// CardAt picks a card by index, wrapping around the deck.
func CardAt(i int) Card {
	if i < 0 {
		i = -i
	}
	return deck[i%len(deck)]
}
