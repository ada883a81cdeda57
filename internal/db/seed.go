package db

import (
	"context"
	"database/sql"
	"strconv"
)

type seedCategory struct {
	id, name, description string
}

type seedQuestion struct {
	categoryID, text, difficulty, sampleAnswer string
}

var seedCategories = []seedCategory{
	{"software-engineering", "Software Engineering", "Technical questions for software developers"},
	{"data-science", "Data Science", "Questions related to data analysis, machine learning, and statistics"},
	{"product-management", "Product Management", "Questions for product managers"},
	{"behavioral", "Behavioral", "Common behavioral interview questions"},
	{"system-design", "System Design", "System design and architecture questions"},
}

var seedQuestions = []seedQuestion{
	{"software-engineering", "What is the difference between a stack and a queue?", "medium",
		"A stack follows Last-In-First-Out (LIFO) principle where elements are added and removed from the same end, while a queue follows First-In-First-Out (FIFO) where elements are added at one end and removed from the other."},
	{"software-engineering", "Explain the concept of recursion with an example.", "medium",
		"Recursion is when a function calls itself to solve a smaller instance of the same problem. A classic example is calculating factorial: factorial(n) = n * factorial(n-1), with factorial(0) = 1 as the base case."},
	{"software-engineering", "What is time complexity and why is it important?", "easy",
		"Time complexity measures how the runtime of an algorithm grows as the input size increases. It's important because it helps us predict the performance and scalability of our code."},
	{"data-science", "Explain the difference between supervised and unsupervised learning.", "easy",
		"Supervised learning uses labeled data where the algorithm learns to predict outputs based on input features. Unsupervised learning works with unlabeled data to find patterns or structures without predefined outputs."},
	{"data-science", "What is overfitting and how can you prevent it?", "medium",
		"Overfitting occurs when a model learns the training data too well, including its noise and outliers, performing poorly on new data. Prevention methods include cross-validation, regularization, early stopping, and using more training data."},
	{"product-management", "How would you prioritize features for a new product?", "medium",
		"I would prioritize features using frameworks like RICE (Reach, Impact, Confidence, Effort) or MoSCoW (Must-have, Should-have, Could-have, Won't-have). I'd consider factors like business goals, user needs, technical feasibility, and available resources."},
	{"behavioral", "Tell me about a time you faced a difficult challenge at work.", "medium",
		"When answering, use the STAR method: Situation, Task, Action, Result. Describe a specific situation, the task required, actions you took, and positive results achieved."},
	{"behavioral", "How do you handle conflict with team members?", "medium",
		"I address conflicts directly but respectfully. I focus on understanding the other person's perspective, clearly communicating my own, and working together to find a solution that addresses both parties' concerns."},
	{"system-design", "How would you design a URL shortening service like bit.ly?", "hard",
		"I would design a system with: 1) A hashing function to create short URLs, 2) A database to store mappings between short and long URLs, 3) An API service to handle URL creation and redirection, 4) A caching layer for frequently accessed URLs, and 5) Analytics tracking for URL usage."},
}

// Seed inserts the stock catalog when the categories table is empty.
// Question ids are derived from category id and position so reseeding
// against a populated DB is a no-op.
func Seed(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, c := range seedCategories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id,name,description) VALUES ($1,$2,$3)`,
			c.id, c.name, c.description); err != nil {
			return err
		}
	}
	counts := map[string]int{}
	for _, q := range seedQuestions {
		counts[q.categoryID]++
		id := q.categoryID + "-q" + strconv.Itoa(counts[q.categoryID])
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (id,category_id,question_text,difficulty,sample_answer)
			 VALUES ($1,$2,$3,$4,$5)`,
			id, q.categoryID, q.text, q.difficulty, q.sampleAnswer); err != nil {
			return err
		}
	}
	return tx.Commit()
}
