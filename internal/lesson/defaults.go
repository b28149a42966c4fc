package lesson

import "github.com/hammamikhairi/fuelquest/internal/domain"

// defaults returns the built-in lesson.
func defaults() Content {
	return Content{
		Scripts: map[domain.SlideID]string{
			domain.SlideDashboard: "Listen up team. We need a mindset shift. We don't eat just to get full. " +
				"We eat to build the machine. Your muscles and brain are like teams of tiny builders. " +
				"Protein gives them the blocks they need. Enter your weight and I'll calculate exactly how much " +
				"protein you need at 1.6 grams per kilogram. Then build your day to hit that goal!",
			domain.SlideProtein: "Welcome to the Balanced Fuel Protocol. Every cell in your body contains protein. " +
				"Muscles use it to repair, and your brain uses it for focus chemicals. But you also need carbs for energy! " +
				"Hit 30 grams of protein AND at least 20 grams of carbs. Watch your limits though. " +
				"Too much fat slows you down, and too many calories overloads the system. " +
				"Greek yogurt has 17 grams of protein, nearly double regular yogurt. Try combining foods for a balanced meal.",
			domain.SlideCreatine: "Time for the Math Speed Challenge! Vegetarians have about 80 percent creatine in their brain battery. " +
				"Let's test your speed at 80 percent first. Then we'll top off your tank with creatine and try again. " +
				"Watch how having a full battery gives you more thinking time. " +
				"Five grams daily is the research-backed dose for memory and math performance.",
			domain.SlideSugar: "I want to teach you how your body works. Insulin is a key that opens your cells to let energy in. " +
				"When blood sugar rises fast, your pancreas releases insulin. But sugar jams the lock! " +
				"Candy spikes then crashes your blood sugar. That crash is called The Bonk. " +
				"Keep sugar under 25 grams daily, that's just 6 teaspoons. " +
				"Choose steady fuel like protein and fiber to avoid the crash.",
			domain.SlideStrategy: "Time for the final mission! To equip each habit, you'll need to answer a question about what you've learned. " +
				"Think back to the previous missions. Power Smoothie gives us protein and hidden greens. " +
				"Greek Yogurt is packed with high quality protein. Creatine tops off your brain battery. " +
				"And 60 minutes of activity tells your body to grow stronger. " +
				"Answer correctly to unlock each habit and complete the protocol!",
		},

		Hints: map[domain.SlideID]string{
			domain.SlideDashboard: "Tell me your name and your weight, then add at least one food you ate today.",
			domain.SlideProtein:   "Try Greek Yogurt or Pea Protein. They pack protein without much fat.",
			domain.SlideCreatine:  "Play a round at 80 percent, then dose 5 grams and play again at full battery.",
			domain.SlideSugar:     "Skip the candy. Oatmeal or yogurt with berries gives you steady fuel.",
			domain.SlideStrategy:  "Answer each habit question to equip it. Think back to what protein and creatine do.",
		},

		Quizzes: map[domain.HabitID]Quiz{
			domain.HabitSmoothie: {
				Title:       "Power Smoothie",
				Description: "Protein + Hidden Greens (Dose what we lack)",
				Question:    "What two things does a Power Smoothie sneak into your day?",
				Hint:        "One builds muscle, the other is green and leafy.",
				Keywords:    []string{"protein", "green", "spinach", "kale", "vegetable", "veggie"},
			},
			domain.HabitYogurt: {
				Title:       "Greek Yogurt Bowl",
				Description: "High quality fuel foundation.",
				Question:    "Why is Greek yogurt better fuel than regular yogurt?",
				Hint:        "Think about the number 17.",
				Keywords:    []string{"protein", "double", "17", "more"},
			},
			domain.HabitCreatine: {
				Title:       "Creatine Dose",
				Description: "Small dose for Memory & Math.",
				Question:    "What does creatine top off, and how many grams a day?",
				Hint:        "It charged something in the math challenge.",
				Keywords:    []string{"brain", "battery", "memory", "math", "5", "five"},
			},
			domain.HabitActivity: {
				Title:       "Heart Pumping",
				Description: "60 mins. Active stress = Growth.",
				Question:    "How many minutes of activity tell your body to grow stronger?",
				Hint:        "One whole hour.",
				Keywords:    []string{"60", "sixty", "hour"},
			},
		},

		DashboardFoods: []domain.FoodItem{
			{ID: "eggs", Name: "Eggs", Emoji: "🥚", Calories: 70, Protein: 6, Carbs: 1},
			{ID: "greek-yogurt", Name: "Greek Yogurt", Emoji: "🍦", Calories: 100, Protein: 17, Carbs: 6},
			{ID: "milk", Name: "Milk", Emoji: "🥛", Calories: 120, Protein: 8, Carbs: 12},
			{ID: "cottage-cheese", Name: "Cottage Cheese", Emoji: "🧀", Calories: 220, Protein: 28, Carbs: 8},
			{ID: "tofu", Name: "Tofu", Emoji: "🍱", Calories: 90, Protein: 10, Carbs: 2},
			{ID: "tempeh", Name: "Tempeh", Emoji: "🫘", Calories: 160, Protein: 15, Carbs: 8},
			{ID: "edamame", Name: "Edamame", Emoji: "🫛", Calories: 190, Protein: 17, Carbs: 15},
			{ID: "quinoa", Name: "Quinoa", Emoji: "🍚", Calories: 220, Protein: 8, Carbs: 39},
			{ID: "lentils", Name: "Lentils", Emoji: "🍲", Calories: 230, Protein: 18, Carbs: 40},
			{ID: "black-beans", Name: "Black Beans", Emoji: "🫘", Calories: 230, Protein: 15, Carbs: 41},
			{ID: "chickpeas", Name: "Chickpeas", Emoji: "🧆", Calories: 270, Protein: 15, Carbs: 45},
			{ID: "peanut-butter", Name: "Peanut Butter", Emoji: "🥜", Calories: 190, Protein: 8, Carbs: 7},
			{ID: "almonds", Name: "Almonds", Emoji: "🌰", Calories: 200, Protein: 6, Carbs: 7},
		},

		MealFoods: []domain.MealFood{
			{Name: "Tomato Soup", Emoji: "🍅", Protein: 2, Fat: 0, Carbs: 10},
			{Name: "Almond Milk", Emoji: "🥛", Protein: 1, Fat: 2.5, Carbs: 1},
			{Name: "Annie's Mac & Cheese", Emoji: "🧀", Protein: 9, Fat: 10, Carbs: 45},
			{Name: "Bean & Cheese Taco", Emoji: "🌮", Protein: 12, Fat: 14, Carbs: 30},
			{Name: "Cheese Quesadilla", Emoji: "🌯", Protein: 12, Fat: 18, Carbs: 25},
			{Name: "PB & J Sandwich", Emoji: "🥜", Protein: 8, Fat: 12, Carbs: 40},
			{Name: "Ballerina Farm Whey", Emoji: "💪", Protein: 24, Fat: 0, Carbs: 2},
			{Name: "Pea Protein", Emoji: "🫛", Protein: 20, Fat: 1.5, Carbs: 1},
			{Name: "Bone Broth Ramen", Emoji: "🍜", Protein: 15, Fat: 5, Carbs: 30},
			{Name: "Greek Yogurt", Emoji: "🍦", Protein: 15, Fat: 0, Carbs: 6},
		},

		SugarFoods: []domain.FoodItem{
			{ID: "gummy-bears", Name: "Gummy Bears", Emoji: "🐻", Calories: 140, Carbs: 34, Spike: 30, Duration: 40, Category: domain.CategorySugar},
			{ID: "soda", Name: "Soda", Emoji: "🥤", Calories: 150, Carbs: 39, Spike: 35, Duration: 30, Category: domain.CategorySugar},
			{ID: "fruit-juice", Name: "Fruit Juice", Emoji: "🧃", Calories: 110, Carbs: 26, Spike: 25, Duration: 45, Category: domain.CategorySugar},
			{ID: "glazed-donut", Name: "Glazed Donut", Emoji: "🍩", Calories: 240, Protein: 3, Carbs: 31, Spike: 32, Duration: 50, Category: domain.CategorySugar},
			{ID: "white-bread", Name: "White Bread", Emoji: "🍞", Calories: 80, Protein: 3, Carbs: 15, Spike: 18, Duration: 60, Category: domain.CategoryCarb},
			{ID: "oatmeal", Name: "Oatmeal", Emoji: "🥣", Calories: 150, Protein: 5, Carbs: 27, Spike: 12, Duration: 120, Category: domain.CategoryCarb},
			{ID: "banana", Name: "Banana", Emoji: "🍌", Calories: 105, Protein: 1, Carbs: 27, Spike: 14, Duration: 80, Category: domain.CategoryCarb},
			{ID: "greek-yogurt", Name: "Greek Yogurt", Emoji: "🍦", Calories: 100, Protein: 17, Carbs: 6, Spike: 6, Duration: 150, Category: domain.CategoryGood},
			{ID: "almonds", Name: "Almonds", Emoji: "🌰", Calories: 200, Protein: 6, Carbs: 7, Spike: 4, Duration: 160, Category: domain.CategoryGood},
			{ID: "eggs", Name: "Eggs", Emoji: "🥚", Calories: 140, Protein: 12, Carbs: 1, Spike: 5, Duration: 150, Category: domain.CategoryGood},
			{ID: "berries", Name: "Berries", Emoji: "🫐", Calories: 60, Protein: 1, Carbs: 14, Spike: 8, Duration: 90, Category: domain.CategoryGood},
		},

		MealIdeas: []string{
			"Greek yogurt with berries and a spoon of peanut butter",
			"Bean and cheese taco with a glass of milk",
			"Scrambled eggs on whole grain toast",
			"Lentil soup with a side of quinoa",
			"Power smoothie: whey, spinach, banana and milk",
		},

		Celebrations: []string{
			"Mission complete! Your builders have everything they need.",
			"Level up! You just fueled like a champion.",
			"That's how you build the machine. Great work!",
			"Boom! Steady fuel, strong brain, full battery.",
		},
	}
}
