package catalog

import "github.com/johnwards/poiseed/internal/domain"

func ptr[T any](v T) *T { return &v }

// moscow is never handed out directly; Moscow returns copies.
var moscow = mustValidate([]domain.POI{
	{
		Name:        "ВДНХ",
		Description: "Выставка достижений народного хозяйства СССР - грандиозный выставочный комплекс",
		Latitude:    55.8304,
		Longitude:   37.6325,
		Epoch:       domain.EpochSoviet,
		Category:    domain.CategoryArchitecture,
		Importance:  10,
		YearBuilt:   ptr(1939),
		Architect:   ptr("Вячеслав Олтаржевский"),
		Style:       ptr("Сталинский ампир"),
		Photos: []string{
			"https://example.com/vdnh1.jpg",
			"https://example.com/vdnh2.jpg",
		},
	},
	{
		Name:        "Павильон 'Космос' на ВДНХ",
		Description: "Легендарный павильон, посвященный космическим достижениям СССР",
		Latitude:    55.8283,
		Longitude:   37.6308,
		Epoch:       domain.EpochSoviet,
		Category:    domain.CategoryHistory,
		Importance:  9,
		YearBuilt:   ptr(1939),
		Style:       ptr("Сталинский ампир"),
	},
	{
		Name:        "Фонтан 'Дружба народов'",
		Description: "Символ единства советских республик с позолоченными скульптурами",
		Latitude:    55.8277,
		Longitude:   37.6319,
		Epoch:       domain.EpochSoviet,
		Category:    domain.CategoryArt,
		Importance:  9,
		YearBuilt:   ptr(1954),
		Architect:   ptr("Константин Топуридзе"),
	},
	{
		Name:        "Рабочий и колхозница",
		Description: "Монументальная скульптура работы Веры Мухиной - символ советской эпохи",
		Latitude:    55.8311,
		Longitude:   37.6278,
		Epoch:       domain.EpochSoviet,
		Category:    domain.CategoryArt,
		Importance:  10,
		YearBuilt:   ptr(1937),
		Architect:   ptr("Вера Мухина"),
		Style:       ptr("Социалистический реализм"),
	},
	{
		Name:        "МГУ им. М.В. Ломоносова",
		Description: "Главное здание МГУ - одна из знаменитых сталинских высоток",
		Latitude:    55.7033,
		Longitude:   37.5297,
		Epoch:       domain.EpochSoviet,
		Category:    domain.CategoryArchitecture,
		Importance:  10,
		YearBuilt:   ptr(1953),
		Architect:   ptr("Лев Руднев"),
		Style:       ptr("Сталинский ампир"),
	},
	{
		Name:        "Останкинская телебашня",
		Description: "Символ советской телевизионной эпохи, одно из высочайших зданий мира",
		Latitude:    55.8194,
		Longitude:   37.6119,
		Epoch:       domain.EpochSoviet,
		Category:    domain.CategoryArchitecture,
		Importance:  9,
		YearBuilt:   ptr(1967),
		Architect:   ptr("Николай Никитин"),
	},
	{
		Name:        "Парк Горького",
		Description: "Центральный парк культуры и отдыха имени Горького - место отдыха советских граждан",
		Latitude:    55.7304,
		Longitude:   37.6012,
		Epoch:       domain.EpochSoviet,
		Category:    domain.CategoryCulture,
		Importance:  8,
		YearBuilt:   ptr(1928),
	},
	{
		Name:        "Гостиница 'Украина'",
		Description: "Одна из семи сталинских высоток, образец советской архитектуры",
		Latitude:    55.7526,
		Longitude:   37.5676,
		Epoch:       domain.EpochSoviet,
		Category:    domain.CategoryArchitecture,
		Importance:  9,
		YearBuilt:   ptr(1957),
		Architect:   ptr("Аркадий Мордвинов"),
		Style:       ptr("Сталинский ампир"),
	},
	{
		Name:        "Третьяковская галерея",
		Description: "Крупнейший музей русского искусства в мире",
		Latitude:    55.7415,
		Longitude:   37.6206,
		Epoch:       domain.EpochImperial,
		Category:    domain.CategoryArt,
		Importance:  10,
		YearBuilt:   ptr(1856),
	},
	{
		Name:        "Красная площадь",
		Description: "Главная площадь Москвы, сердце столицы",
		Latitude:    55.7539,
		Longitude:   37.6208,
		Epoch:       domain.EpochMedieval,
		Category:    domain.CategoryHistory,
		Importance:  10,
		YearBuilt:   ptr(1493),
	},
	{
		Name:        "Храм Василия Блаженного",
		Description: "Собор Покрова Пресвятой Богородицы на Рву - шедевр русской архитектуры",
		Latitude:    55.7525,
		Longitude:   37.6231,
		Epoch:       domain.EpochMedieval,
		Category:    domain.CategoryReligion,
		Importance:  10,
		YearBuilt:   ptr(1561),
		Architect:   ptr("Постник Яковлев"),
	},
	{
		Name:        "Кремль",
		Description: "Московский Кремль - древняя крепость в центре Москвы",
		Latitude:    55.7520,
		Longitude:   37.6175,
		Epoch:       domain.EpochMedieval,
		Category:    domain.CategoryHistory,
		Importance:  10,
		YearBuilt:   ptr(1482),
	},
})
