package seed

func price(v float64) *float64 { return &v }

// DemoProducts is the sample catalog used by `seed -demo`
func DemoProducts() []Row {
	return []Row{
		{ExternalID: "lamp-arco", Title: "Lámpara de pie Arco", Category: "Iluminación", Price: 189.00, OriginalPrice: price(229.00), Rating: 4.7, Stock: 8,
			ImageURL: "https://images.casaviva.local/lamp-arco.jpg", Description: "Lámpara de pie con brazo curvo de acero y pantalla de lino."},
		{ExternalID: "lamp-nube", Title: "Lámpara de mesa Nube", Category: "Iluminación", Price: 64.90, Rating: 4.4, Stock: 15,
			ImageURL: "https://images.casaviva.local/lamp-nube.jpg", Description: "Lámpara de sobremesa con difusor de vidrio opalino."},
		{ExternalID: "lamp-mimbre", Title: "Colgante de mimbre Brisa", Category: "Iluminación", Price: 79.00, OriginalPrice: price(95.00), Rating: 4.6, Stock: 0,
			ImageURL: "https://images.casaviva.local/lamp-mimbre.jpg", Description: "Pantalla colgante tejida a mano en mimbre natural."},
		{ExternalID: "lamp-flexo", Title: "Flexo de escritorio Taller", Category: "Iluminación", Price: 39.50, Rating: 4.1, Stock: 22,
			ImageURL: "https://images.casaviva.local/lamp-flexo.jpg", Description: "Flexo articulado de metal con acabado mate."},
		{ExternalID: "sofa-olmo", Title: "Sofá de tres plazas Olmo", Category: "Muebles", Price: 749.00, OriginalPrice: price(899.00), Rating: 4.8, Stock: 3,
			ImageURL: "https://images.casaviva.local/sofa-olmo.jpg", Description: "Sofá tapizado en pana con patas de roble macizo."},
		{ExternalID: "mesa-roble", Title: "Mesa de centro Roble", Category: "Muebles", Price: 219.00, Rating: 4.5, Stock: 6,
			ImageURL: "https://images.casaviva.local/mesa-roble.jpg", Description: "Mesa de centro redonda de roble aceitado."},
		{ExternalID: "silla-tejo", Title: "Silla de comedor Tejo", Category: "Muebles", Price: 89.00, Rating: 4.2, Stock: 24,
			ImageURL: "https://images.casaviva.local/silla-tejo.jpg", Description: "Silla de madera con asiento de cuerda trenzada."},
		{ExternalID: "estante-pino", Title: "Estantería modular Pino", Category: "Muebles", Price: 129.00, OriginalPrice: price(149.00), Rating: 3.9, Stock: 0,
			ImageURL: "https://images.casaviva.local/estante-pino.jpg", Description: "Estantería de cinco baldas ampliable."},
		{ExternalID: "cojin-lino", Title: "Cojín de lino Arena", Category: "Textiles", Price: 24.90, Rating: 4.3, Stock: 40,
			ImageURL: "https://images.casaviva.local/cojin-lino.jpg", Description: "Funda de lino lavado con relleno de fibra."},
		{ExternalID: "manta-lana", Title: "Manta de lana Sierra", Category: "Textiles", Price: 59.00, OriginalPrice: price(72.00), Rating: 4.9, Stock: 12,
			ImageURL: "https://images.casaviva.local/manta-lana.jpg", Description: "Manta de lana merino con flecos."},
		{ExternalID: "alfombra-yute", Title: "Alfombra de yute Duna", Category: "Textiles", Price: 139.00, Rating: 4.0, Stock: 5,
			ImageURL: "https://images.casaviva.local/alfombra-yute.jpg", Description: "Alfombra redonda de yute trenzado, 150 cm."},
		{ExternalID: "jarron-barro", Title: "Jarrón de barro Alba", Category: "Decoración", Price: 34.00, Rating: 4.6, Stock: 18,
			ImageURL: "https://images.casaviva.local/jarron-barro.jpg", Description: "Jarrón de barro cocido esmaltado a mano."},
		{ExternalID: "espejo-sol", Title: "Espejo Sol", Category: "Decoración", Price: 99.00, OriginalPrice: price(120.00), Rating: 4.4, Stock: 7,
			ImageURL: "https://images.casaviva.local/espejo-sol.jpg", Description: "Espejo redondo con marco de ratán."},
		{ExternalID: "vela-cera", Title: "Vela aromática Higuera", Category: "Decoración", Price: 18.50, Rating: 4.1, Stock: 60,
			ImageURL: "https://images.casaviva.local/vela-cera.jpg", Description: "Vela de cera de soja con aroma a higuera."},
		{ExternalID: "vajilla-gres", Title: "Vajilla de gres Marea", Category: "Cocina", Price: 119.00, Rating: 4.7, Stock: 9,
			ImageURL: "https://images.casaviva.local/vajilla-gres.jpg", Description: "Set de 12 piezas de gres reactivo."},
		{ExternalID: "tabla-olivo", Title: "Tabla de cortar Olivo", Category: "Cocina", Price: 29.00, Rating: 4.5, Stock: 30,
			ImageURL: "https://images.casaviva.local/tabla-olivo.jpg", Description: "Tabla de madera de olivo de una sola pieza."},
	}
}
