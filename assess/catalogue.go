// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assess

import "github.com/danielhkuo/appadel/models"

// Improvement content categories
const (
	CategoryDefensa = "Defensa"
	CategoryAtaque  = "Ataque"
)

// SurveyQuestions is the level survey. The answer for each question is the
// index of the chosen option.
var SurveyQuestions = []models.SurveyQuestion{
	{
		Question: "¿Cuánto tiempo llevas jugando al pádel?",
		Options:  []string{"Menos de 6 meses", "6 meses - 1 año", "1-3 años", "3-5 años", "Más de 5 años"},
	},
	{
		Question: "¿Con qué frecuencia juegas?",
		Options:  []string{"1 vez por semana", "2-3 veces por semana", "4-5 veces por semana", "Casi todos los días"},
	},
	{
		Question: "¿Cómo calificarías tu nivel de juego actual?",
		Options:  []string{"Principiante", "Intermedio bajo", "Intermedio", "Intermedio alto", "Avanzado"},
	},
	{
		Question: "¿Participas en torneos o competiciones?",
		Options:  []string{"Nunca", "Ocasionalmente", "Regularmente", "Competidor activo"},
	},
	{
		Question: "¿Qué tan cómodo te sientes con diferentes tipos de golpes?",
		Options:  []string{"Muy incómodo", "Algo incómodo", "Neutral", "Cómodo", "Muy cómodo"},
	},
}

// QuizQuestions is the drive/revés quiz. The answer for each question is the
// option text itself.
var QuizQuestions = []models.QuizQuestion{
	{
		Question: "¿Cuál es tu posición preferida en la pista?",
		Options:  []string{"Lado derecho (drive)", "Lado izquierdo (revés)", "Me adapto a ambos"},
	},
	{
		Question: "¿Qué golpe te resulta más natural?",
		Options:  []string{"Drive", "Revés", "Ambos por igual"},
	},
	{
		Question: "En situaciones de presión, ¿qué haces?",
		Options:  []string{"Busco mi drive", "Confío en mi revés", "Depende de la situación"},
	},
	{
		Question: "¿Cómo prefieres atacar?",
		Options:  []string{"Desde el lado derecho", "Desde el lado izquierdo", "Desde cualquier lado"},
	},
}

// ImprovementVideos lists training content. Entries without a VideoID are
// announced but not published yet.
var ImprovementVideos = []models.ImprovementVideo{
	{ID: "def-1", Category: CategoryDefensa, Title: "Posición en Defensa", Description: "Aprende la postura correcta para defender", VideoID: "nREWxasJN70"},
	{ID: "def-2", Category: CategoryDefensa, Title: "Globos Defensivos", Description: "Contenido próximamente disponible"},
	{ID: "def-3", Category: CategoryDefensa, Title: "Movimiento en Pista", Description: "Contenido próximamente disponible"},
	{ID: "atk-1", Category: CategoryAtaque, Title: "La Bandeja", Description: "Aprende a ejecutar la bandeja correctamente", VideoID: "2JQhy3PjydQ"},
	{ID: "atk-2", Category: CategoryAtaque, Title: "Remate Potente", Description: "Contenido próximamente disponible"},
	{ID: "atk-3", Category: CategoryAtaque, Title: "Bajadas por 3", Description: "Contenido próximamente disponible"},
}

// VideosByCategory returns the improvement videos of one category, in catalogue order
func VideosByCategory(category string) []models.ImprovementVideo {
	out := []models.ImprovementVideo{}
	for _, v := range ImprovementVideos {
		if v.Category == category {
			out = append(out, v)
		}
	}
	return out
}

// VideoURL returns the watch URL of v, or "" when it has no video yet
func VideoURL(v models.ImprovementVideo) string {
	if v.VideoID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.VideoID
}
