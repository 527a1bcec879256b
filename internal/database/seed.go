package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"elearning/internal/models"
	"elearning/internal/store"
)

// SeedCatalogue fills empty course and book collections with the starter
// catalogue. Collections that already hold documents are left alone.
func SeedCatalogue(ctx context.Context, courses store.Catalogue[models.Course], books store.Catalogue[models.Book], log logrus.FieldLogger) error {
	log = log.WithField("area", "CATALOGUE")
	base := time.Now().Add(-time.Hour)

	n, err := courses.Count(ctx)
	if err != nil {
		return fmt.Errorf("count courses: %w", err)
	}
	if n == 0 {
		items := starterCourses()
		for i, c := range items {
			c.CreatedAt = base.Add(time.Duration(i) * time.Second)
		}
		if err := courses.Insert(ctx, items...); err != nil {
			return fmt.Errorf("seed courses: %w", err)
		}
		log.WithField("count", len(items)).Info("courses seeded")
	}

	n, err = books.Count(ctx)
	if err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	if n == 0 {
		items := starterBooks()
		for i, b := range items {
			b.CreatedAt = base.Add(time.Duration(i) * time.Second)
		}
		if err := books.Insert(ctx, items...); err != nil {
			return fmt.Errorf("seed books: %w", err)
		}
		log.WithField("count", len(items)).Info("books seeded")
	}
	return nil
}

func starterCourses() []*models.Course {
	return []*models.Course{
		{
			Title:       "Python για Αρχάριους",
			Description: "Μάθε τα βασικά της Python από το μηδέν. Ιδανικό για όσους ξεκινούν τον προγραμματισμό.",
			Category:    "Προγραμματισμός",
			Instructor:  "Δρ. Μαρία Παπαδοπούλου",
			Duration:    "8 εβδομάδες",
			Level:       models.LevelBeginner,
			Students:    1250,
			Rating:      4.8,
			Image:       "assets/img/courses/python-basics.jpg",
			Featured:    true,
			Topics:      models.StringList{"Μεταβλητές", "Συναρτήσεις", "Loops", "OOP"},
			Price:       models.FreePrice,
		},
		{
			Title:       "JavaScript & React",
			Description: "Κατασκευή σύγχρονων web εφαρμογών με JavaScript και React framework.",
			Category:    "Προγραμματισμός",
			Instructor:  "Γιώργος Νικολάου",
			Duration:    "10 εβδομάδες",
			Level:       models.LevelIntermediate,
			Students:    980,
			Rating:      4.9,
			Image:       "assets/img/courses/javascript-react.jpg",
			Featured:    true,
			Topics:      models.StringList{"ES6+", "React Hooks", "State Management", "API Integration"},
			Price:       "49€",
		},
		{
			Title:       "Δίκτυα Υπολογιστών",
			Description: "Κατανόηση πρωτοκόλλων TCP/IP, routing, switching και ασφάλειας δικτύων.",
			Category:    "Δίκτυα",
			Instructor:  "Καθηγ. Κώστας Αντωνίου",
			Duration:    "12 εβδομάδες",
			Level:       models.LevelIntermediate,
			Students:    750,
			Rating:      4.7,
			Image:       "assets/img/courses/networking.jpg",
			Featured:    true,
			Topics:      models.StringList{"TCP/IP", "Routing", "VLANs", "Network Security"},
			Price:       "79€",
		},
		{
			Title:       "SQL & Βάσεις Δεδομένων",
			Description: "Μάθε να σχεδιάζεις και να διαχειρίζεσαι σχεσιακές βάσεις δεδομένων.",
			Category:    "Βάσεις Δεδομένων",
			Instructor:  "Ελένη Γεωργίου",
			Duration:    "6 εβδομάδες",
			Level:       models.LevelBeginner,
			Students:    1100,
			Rating:      4.6,
			Image:       "assets/img/courses/sql-databases.jpg",
			Topics:      models.StringList{"SQL Queries", "Normalization", "Indexes", "Transactions"},
			Price:       models.FreePrice,
		},
		{
			Title:       "Κυβερνοασφάλεια",
			Description: "Προστασία συστημάτων και δεδομένων από κυβερνοεπιθέσεις.",
			Category:    "Ασφάλεια",
			Instructor:  "Δημήτρης Βασιλείου",
			Duration:    "10 εβδομάδες",
			Level:       models.LevelAdvanced,
			Students:    620,
			Rating:      4.9,
			Image:       "assets/img/courses/cybersecurity.jpg",
			Topics:      models.StringList{"Penetration Testing", "Encryption", "Firewalls", "Incident Response"},
			Price:       "99€",
		},
		{
			Title:       "Java Programming",
			Description: "Ολοκληρωμένο μάθημα Java από τα βασικά έως προχωρημένα θέματα.",
			Category:    "Προγραμματισμός",
			Instructor:  "Αλέξανδρος Μιχαηλίδης",
			Duration:    "14 εβδομάδες",
			Level:       models.LevelIntermediate,
			Students:    890,
			Rating:      4.7,
			Image:       "assets/img/courses/java-programming.png",
			Topics:      models.StringList{"OOP", "Collections", "Multithreading", "Spring Framework"},
			Price:       "69€",
		},
		{
			Title:       "Cloud Computing με AWS",
			Description: "Μάθε να χρησιμοποιείς τις υπηρεσίες του Amazon Web Services.",
			Category:    "Cloud",
			Instructor:  "Σοφία Κωνσταντίνου",
			Duration:    "8 εβδομάδες",
			Level:       models.LevelIntermediate,
			Students:    540,
			Rating:      4.8,
			Image:       "assets/img/courses/aws-cloud.png",
			Topics:      models.StringList{"EC2", "S3", "Lambda", "RDS"},
			Price:       "89€",
		},
		{
			Title:       "Machine Learning Basics",
			Description: "Εισαγωγή στη Μηχανική Μάθηση με Python και scikit-learn.",
			Category:    "AI/ML",
			Instructor:  "Δρ. Νίκος Παπαδάκης",
			Duration:    "12 εβδομάδες",
			Level:       models.LevelAdvanced,
			Students:    710,
			Rating:      4.9,
			Image:       "assets/img/courses/machine-learning.png",
			Topics:      models.StringList{"Supervised Learning", "Unsupervised Learning", "Neural Networks", "Model Evaluation"},
			Price:       "129€",
		},
		{
			Title:       "Docker & Kubernetes",
			Description: "Containerization και orchestration για σύγχρονες εφαρμογές.",
			Category:    "DevOps",
			Instructor:  "Παναγιώτης Ιωάννου",
			Duration:    "6 εβδομάδες",
			Level:       models.LevelAdvanced,
			Students:    480,
			Rating:      4.7,
			Image:       "assets/img/courses/docker-kubernetes.png",
			Topics:      models.StringList{"Docker Containers", "Docker Compose", "Kubernetes Clusters", "Deployment Strategies"},
			Price:       "79€",
		},
	}
}

func starterBooks() []*models.Book {
	return []*models.Book{
		{
			Title:       "Clean Code",
			Author:      "Robert C. Martin",
			Description: "Ένας οδηγός για τη συγγραφή καθαρού, κατανοητού και συντηρήσιμου κώδικα.",
			Category:    "Προγραμματισμός",
			Type:        models.BookTypeBook,
			Pages:       464,
			Year:        2008,
			Rating:      4.9,
			Image:       "assets/img/books/clean-code-course.png",
			Featured:    true,
			Topics:      models.StringList{"Best Practices", "Code Quality", "Refactoring"},
			Price:       "35€",
			Format:      "PDF, ePub",
		},
		{
			Title:       "Computer Networking: A Top-Down Approach",
			Author:      "James Kurose, Keith Ross",
			Description: "Το κλασικό βιβλίο για δίκτυα υπολογιστών με προσέγγιση από την εφαρμογή προς το υλικό.",
			Category:    "Δίκτυα",
			Type:        models.BookTypeBook,
			Pages:       864,
			Year:        2021,
			Rating:      4.8,
			Image:       "assets/img/books/networking-course.png",
			Featured:    true,
			Topics:      models.StringList{"Network Protocols", "Internet Architecture", "Security"},
			Price:       "45€",
			Format:      "PDF",
		},
		{
			Title:       "Database System Concepts",
			Author:      "Abraham Silberschatz",
			Description: "Ολοκληρωμένη εισαγωγή στα συστήματα βάσεων δεδομένων.",
			Category:    "Βάσεις Δεδομένων",
			Type:        models.BookTypeBook,
			Pages:       1376,
			Year:        2020,
			Rating:      4.7,
			Image:       "assets/img/books/database-systems.png",
			Featured:    true,
			Topics:      models.StringList{"Relational Databases", "SQL", "Transaction Management", "NoSQL"},
			Price:       "50€",
			Format:      "PDF, ePub",
		},
		{
			Title:       "Python Crash Course",
			Author:      "Eric Matthes",
			Description: "Γρήγορη εισαγωγή στην Python με πρακτικά projects.",
			Category:    "Προγραμματισμός",
			Type:        models.BookTypeBook,
			Pages:       544,
			Year:        2019,
			Rating:      4.8,
			Image:       "assets/img/books/python-course.png",
			Topics:      models.StringList{"Python Basics", "Data Visualization", "Web Applications"},
			Price:       "30€",
			Format:      "PDF, ePub",
		},
		{
			Title:       "Introduction to Algorithms (Video Series)",
			Author:      "MIT OpenCourseWare",
			Description: "Σειρά βίντεο διαλέξεων για αλγορίθμους και δομές δεδομένων.",
			Category:    "Αλγόριθμοι",
			Type:        models.BookTypeVideo,
			Duration:    "24 ώρες",
			Year:        2020,
			Rating:      4.9,
			Image:       "assets/img/books/algorithms.png",
			Topics:      models.StringList{"Sorting", "Graph Algorithms", "Dynamic Programming", "Complexity Analysis"},
			Price:       models.FreePrice,
			Format:      "Video (MP4)",
		},
		{
			Title:       "The Pragmatic Programmer",
			Author:      "Andrew Hunt, David Thomas",
			Description: "Συμβουλές και τεχνικές για να γίνεις καλύτερος προγραμματιστής.",
			Category:    "Προγραμματισμός",
			Type:        models.BookTypeBook,
			Pages:       352,
			Year:        2019,
			Rating:      4.8,
			Image:       "assets/img/books/pragrmatic-programming.png",
			Topics:      models.StringList{"Software Craftsmanship", "Career Development", "Tools"},
			Price:       "32€",
			Format:      "PDF, ePub",
		},
		{
			Title:       "Cybersecurity Fundamentals (Video Course)",
			Author:      "CompTIA",
			Description: "Βίντεο μαθήματα για τα θεμέλια της κυβερνοασφάλειας.",
			Category:    "Ασφάλεια",
			Type:        models.BookTypeVideo,
			Duration:    "18 ώρες",
			Year:        2022,
			Rating:      4.7,
			Image:       "assets/img/books/cyber-security.png",
			Topics:      models.StringList{"Threat Analysis", "Security Tools", "Compliance", "Risk Management"},
			Price:       "59€",
			Format:      "Video (MP4)",
		},
		{
			Title:       "Designing Data-Intensive Applications",
			Author:      "Martin Kleppmann",
			Description: "Αρχιτεκτονική και σχεδιασμός εφαρμογών με μεγάλο όγκο δεδομένων.",
			Category:    "Βάσεις Δεδομένων",
			Type:        models.BookTypeBook,
			Pages:       616,
			Year:        2017,
			Rating:      4.9,
			Image:       "assets/img/books/data-intensive.png",
			Topics:      models.StringList{"Distributed Systems", "Scalability", "Reliability", "Maintainability"},
			Price:       "42€",
			Format:      "PDF, ePub",
		},
	}
}
