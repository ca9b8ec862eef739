package section

import "github.com/kailas-cloud/parksite/internal/domain/search/kind"

// DefaultEntries is the site map of the park website as shipped.
func DefaultEntries() []Entry {
	return []Entry{
		{Kind: kind.Page, Title: "Inicio", Description: "Parque de trampolines para toda la familia", Href: "/"},
		{Kind: kind.Page, Title: "Sucursales", Description: "Ubicaciones, horarios y cómo llegar", Href: "/sucursales"},
		{Kind: kind.Page, Title: "Precios", Description: "Tarifas de salto libre, paquetes y membresías", Href: "/precios"},
		{
			Kind: kind.Page, Title: "Fiestas de Cumpleaños",
			Description: "Paquetes de cumpleaños con área privada, comida y tiempo de salto",
			Href:        "/fiestas-y-eventos/fiestas-cumpleanos",
		},
		{
			Kind: kind.Page, Title: "Eventos Empresariales",
			Description: "Integraciones de equipo y eventos corporativos",
			Href:        "/fiestas-y-eventos/eventos-empresariales",
		},
		{
			Kind: kind.Page, Title: "Excursiones Escolares",
			Description: "Visitas de escuelas y grupos",
			Href:        "/fiestas-y-eventos/excursiones-escolares",
		},
		{Kind: kind.Page, Title: "Menú de Alimentos", Description: "Snacks, bebidas y comida", Href: "/menu-alimentos"},
		{Kind: kind.Page, Title: "Blog", Description: "Noticias, consejos y novedades del parque", Href: "/blog"},
		{Kind: kind.Page, Title: "Reglamento", Description: "Normas de seguridad y uso de calcetines antiderrapantes", Href: "/reglamento"},
		{Kind: kind.Page, Title: "Contacto", Description: "Teléfono, correo y redes sociales", Href: "/contacto"},
		{
			Kind: kind.Section, Title: "Atracciones",
			Description: "Trampolines, foso de espuma, muro de escalada y dodgeball",
			Href:        "/#atracciones", SectionID: "atracciones",
		},
		{
			Kind: kind.Section, Title: "Preguntas Frecuentes",
			Description: "Respuestas a las dudas más comunes",
			Href:        "/#faq", SectionID: "faq",
		},
		{
			Kind: kind.Section, Title: "Promociones",
			Description: "Descuentos vigentes y días especiales",
			Href:        "/#promociones", SectionID: "promociones",
		},
	}
}

// Default builds the shipped table. It panics on invalid seed data.
func Default() *Table {
	t, err := NewTable(DefaultEntries())
	if err != nil {
		panic("invalid default section table: " + err.Error())
	}
	return t
}
